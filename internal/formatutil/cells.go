// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package formatutil

import (
	"strings"
	"unicode/utf8"
)

// Ellipsis marks a truncated cell
const Ellipsis = "…"

// Cell returns s truncated to width runes, keeping its beginning, and padded with spaces to width runes.
// A truncated cell ends with an ellipsis.
func Cell(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// TailCell returns s truncated to width runes, keeping its end, and padded with spaces to width runes.
// A truncated cell starts with an ellipsis. It suits file locations, where the end is the most informative part.
func TailCell(s string, width int) string {
	return Pad(TruncateStart(s, width), width)
}

// Truncate returns s if it has at most width runes, otherwise its first width-1 runes followed by an ellipsis.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return string(runes[:width-1]) + Ellipsis
}

// TruncateStart returns s if it has at most width runes, otherwise an ellipsis followed by its last width-1 runes.
func TruncateStart(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	runes := []rune(s)
	return Ellipsis + string(runes[len(runes)-width+1:])
}

// Pad pads s with spaces on the right until it has width runes
func Pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}

// Center pads s with spaces on both sides until it has width runes, with the extra space on the right
func Center(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}
