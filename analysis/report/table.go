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

package report

import (
	"fmt"
	"strings"

	"github.com/awslabs/hydrolysis/internal/formatutil"
)

// alignment of the text of a column in its cells
type alignment int

const (
	alignLeft alignment = iota
	// alignTail keeps the end of a long text, for locations
	alignTail
	alignCenter
)

type column struct {
	title string
	width int
	align alignment
	// style, if not nil, is applied to the text of the cells after they are padded
	style func(string) string
}

// table is a box-drawn table with fixed column widths. Longer texts are truncated with an ellipsis.
type table struct {
	columns []column
	rows    [][]string
	// max is the maximum number of rows written; zero means no limit
	max int
	// what names the rows in the overflow line
	what string
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) border(left, middle, right string) string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		parts[i] = strings.Repeat("─", c.width+2)
	}
	return "  " + left + strings.Join(parts, middle) + right + "\n"
}

func (t *table) line(cells []string, header bool) string {
	parts := make([]string, len(t.columns))
	for i, c := range t.columns {
		text := ""
		if i < len(cells) {
			text = cells[i]
		}
		switch {
		case header:
			parts[i] = formatutil.Cell(text, c.width)
		case c.align == alignTail:
			parts[i] = formatutil.TailCell(text, c.width)
		case c.align == alignCenter:
			parts[i] = formatutil.Center(formatutil.Truncate(text, c.width), c.width)
		default:
			parts[i] = formatutil.Cell(text, c.width)
		}
		if c.style != nil && !header && text != "" {
			trimmed := strings.TrimSpace(parts[i])
			parts[i] = strings.Replace(parts[i], trimmed, c.style(trimmed), 1)
		}
	}
	return "  │ " + strings.Join(parts, " │ ") + " │\n"
}

func (t *table) write(b *strings.Builder) {
	titles := make([]string, len(t.columns))
	for i, c := range t.columns {
		titles[i] = c.title
	}
	b.WriteString(t.border("┌", "┬", "┐"))
	b.WriteString(t.line(titles, true))
	b.WriteString(t.border("├", "┼", "┤"))
	for i, row := range t.rows {
		if t.max > 0 && i >= t.max {
			break
		}
		b.WriteString(t.line(row, false))
	}
	if t.max > 0 && len(t.rows) > t.max {
		fmt.Fprintf(b, "  │ ... and %d more %s\n", len(t.rows)-t.max, t.what)
	}
	b.WriteString(t.border("└", "┴", "┘"))
}
