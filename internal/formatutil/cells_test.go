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

import "testing"

func TestCells(t *testing.T) {
	tests := []struct {
		name  string
		f     func(string, int) string
		s     string
		width int
		want  string
	}{
		{"short", Cell, "map", 6, "map   "},
		{"exact", Cell, "fold", 4, "fold"},
		{"long", Cell, "fold_keyed", 6, "fold_…"},
		{"multibyte", Cell, "épée_sortie", 5, "épée…"},
		{"zero width", Cell, "abc", 0, ""},
		{"tail short", TailCell, "a.rs:1", 8, "a.rs:1  "},
		{"tail long", TailCell, "src/very/long/path.rs:12", 10, "…ath.rs:12"},
		{"center", Center, "✓", 5, "  ✓  "},
		{"center even", Center, "ab", 5, " ab  "},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := test.f(test.s, test.width); got != test.want {
				t.Errorf("got %q, want %q", got, test.want)
			}
		})
	}
}

func TestColors(t *testing.T) {
	defer ResetColors()
	SetColors(false)
	if got := Red("x"); got != "x" {
		t.Errorf("colors are disabled, got %q", got)
	}
	SetColors(true)
	if got := Red("x"); got != "\033[1;31mx\033[0m" {
		t.Errorf("colors are enabled, got %q", got)
	}
	if got := Sanitize("a\033b"); got != `a\x1bb` {
		t.Errorf("unexpected sanitized string %q", got)
	}
}
