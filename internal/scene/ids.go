/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package scene

import (
	"strings"

	"github.com/google/uuid"
)

// IDGen produces element and canvas ids. Tests swap it for a counter.
var IDGen = func() string {
	// "id" keeps the value a valid CSS identifier even when the uuid starts with a digit.
	return "id" + strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}

// CanvasIDGen produces canvas ids.
var CanvasIDGen = uuid.NewString

// NewID returns a fresh element id.
func NewID() string { return IDGen() }
