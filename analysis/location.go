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

package analysis

import (
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/semantics"
)

// SourceLocation returns the location of the user code in the backtrace frames. It is the first frame with a file
// that is not a framework file according to isFramework; if that frame has no line, there is no location. When every
// frame is in the framework, the first frame is the location if it has a file and a line.
// A nil isFramework uses semantics.IsFrameworkFile.
func SourceLocation(frames []ir.Frame, isFramework func(string) bool) *ir.SourceLocation {
	if isFramework == nil {
		isFramework = semantics.IsFrameworkFile
	}
	for _, f := range frames {
		if !f.HasFile || isFramework(f.File) {
			continue
		}
		if !f.HasLine {
			return nil
		}
		return &ir.SourceLocation{File: f.File, Line: f.Line, Function: f.Function}
	}
	if len(frames) == 0 || !frames[0].HasFile || !frames[0].HasLine {
		return nil
	}
	first := frames[0]
	return &ir.SourceLocation{File: first.File, Line: first.Line, Function: first.Function}
}
