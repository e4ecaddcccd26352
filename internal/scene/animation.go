/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

// AnimationType names an entrance effect. The empty value means none.
type AnimationType string

const (
	AnimNone       AnimationType = ""
	AnimFadeIn     AnimationType = "fadeIn"
	AnimSlideUp    AnimationType = "slideUp"
	AnimSlideDown  AnimationType = "slideDown"
	AnimSlideLeft  AnimationType = "slideLeft"
	AnimSlideRight AnimationType = "slideRight"
	AnimZoomIn     AnimationType = "zoomIn"
	AnimZoomOut    AnimationType = "zoomOut"
	AnimBounce     AnimationType = "bounce"
	AnimPulse      AnimationType = "pulse"
	AnimShake      AnimationType = "shake"
	AnimRotate     AnimationType = "rotate"
	AnimFlip       AnimationType = "flip"
)

// AnimationTypes lists every effect in menu order, starting with none.
var AnimationTypes = []AnimationType{
	AnimNone, AnimFadeIn, AnimSlideUp, AnimSlideDown, AnimSlideLeft, AnimSlideRight,
	AnimZoomIn, AnimZoomOut, AnimBounce, AnimPulse, AnimShake, AnimRotate, AnimFlip,
}

// Valid reports whether t is a known effect (none included).
func (t AnimationType) Valid() bool {
	for _, a := range AnimationTypes {
		if a == t {
			return true
		}
	}
	return false
}

// Animation attaches an entrance effect to an element. Times are seconds.
type Animation struct {
	Type     AnimationType `json:"type"`
	Duration float64       `json:"duration"`
	Delay    float64       `json:"delay"`
}
