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

package ir

import (
	"encoding/json"
	"strconv"
)

// Frame is one decoded frame of a node's backtrace.
type Frame struct {
	File     string
	// HasFile is false when the frame has no "file" string, which is different from an empty file name
	HasFile  bool
	Line     uint32
	HasLine  bool
	Function string
}

// Frames decodes the backtrace. The decoding is tolerant: a backtrace that is not an array yields no frames, and
// an element that is not an object yields an empty frame. The line is read from "line", or "lineNumber" if "line" is
// absent; the function from "function", or "fn". A line that is not a non-negative integer counts as missing.
func (d *NodeData) Frames() []Frame {
	if len(d.Backtrace) == 0 {
		return nil
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(d.Backtrace, &raw); err != nil {
		return nil
	}
	frames := make([]Frame, len(raw))
	for i, r := range raw {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(r, &fields); err != nil {
			continue
		}
		frames[i] = decodeFrame(fields)
	}
	return frames
}

func decodeFrame(fields map[string]json.RawMessage) Frame {
	var f Frame
	if file := fields["file"]; len(file) > 0 && file[0] == '"' && json.Unmarshal(file, &f.File) == nil {
		f.HasFile = true
	}

	line, ok := fields["line"]
	if !ok {
		line = fields["lineNumber"]
	}
	var n json.Number
	if len(line) > 0 && line[0] != '"' && json.Unmarshal(line, &n) == nil {
		if x, err := strconv.ParseUint(n.String(), 10, 32); err == nil {
			f.Line = uint32(x)
			f.HasLine = true
		}
	}

	fn, ok := fields["function"]
	if !ok {
		fn = fields["fn"]
	}
	_ = json.Unmarshal(fn, &f.Function)
	return f
}
