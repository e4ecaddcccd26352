/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import "minicanvas/internal/scene"

// keyframeBodies holds the @keyframes body of every effect.
var keyframeBodies = map[scene.AnimationType]string{
	scene.AnimFadeIn:     "from { opacity: 0; } to { opacity: 1; }",
	scene.AnimSlideUp:    "from { transform: translateY(20px); opacity: 0; } to { transform: translateY(0); opacity: 1; }",
	scene.AnimSlideDown:  "from { transform: translateY(-20px); opacity: 0; } to { transform: translateY(0); opacity: 1; }",
	scene.AnimSlideLeft:  "from { transform: translateX(20px); opacity: 0; } to { transform: translateX(0); opacity: 1; }",
	scene.AnimSlideRight: "from { transform: translateX(-20px); opacity: 0; } to { transform: translateX(0); opacity: 1; }",
	scene.AnimZoomIn:     "from { transform: scale(0.8); opacity: 0; } to { transform: scale(1); opacity: 1; }",
	scene.AnimZoomOut:    "from { transform: scale(1.2); opacity: 0; } to { transform: scale(1); opacity: 1; }",
	scene.AnimBounce:     "0%, 20%, 50%, 80%, 100% { transform: translateY(0); } 40% { transform: translateY(-30px); } 60% { transform: translateY(-15px); }",
	scene.AnimPulse:      "0% { transform: scale(1); } 50% { transform: scale(1.05); } 100% { transform: scale(1); }",
	scene.AnimShake:      "0%, 100% { transform: translateX(0); } 10%, 30%, 50%, 70%, 90% { transform: translateX(-10px); } 20%, 40%, 60%, 80% { transform: translateX(10px); }",
	scene.AnimRotate:     "from { transform: rotate(0deg); } to { transform: rotate(360deg); }",
	scene.AnimFlip:       "0% { transform: rotateY(0); } 50% { transform: rotateY(180deg); } 100% { transform: rotateY(360deg); }",
}

// Keyframes returns the @keyframes body for t, or "" for none and unknown effects.
func Keyframes(t scene.AnimationType) string { return keyframeBodies[t] }
