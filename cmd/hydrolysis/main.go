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

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/awslabs/hydrolysis/analysis"
	"github.com/awslabs/hydrolysis/analysis/annotate"
	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/render"
	"github.com/awslabs/hydrolysis/analysis/report"
	"github.com/awslabs/hydrolysis/cmd/hydrolysis/tools"
	"github.com/awslabs/hydrolysis/internal/formatutil"
)

const usage = `Hydrolysis: nondeterminism and CALM analysis of dataflow graphs
Usage:
  hydrolysis [options] <input IR path> <output IR path>
The annotated graph is written to the output path and the report is printed on standard output.
Examples:
  hydrolysis graph.json graph.annotated.json
  hydrolysis -config config.yaml -dot graph.dot graph.json graph.annotated.json`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run runs the command with args and returns the exit code
func run(args []string, stdout io.Writer, stderr io.Writer) int {
	flags, err := tools.NewFlags("hydrolysis", args, usage, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	if flags.Version {
		fmt.Fprintln(stdout, analysis.Version)
		return 0
	}
	if flags.FlagSet.NArg() != 2 {
		fmt.Fprintf(stderr, "error: expected 2 arguments, got %d\n", flags.FlagSet.NArg())
		flags.FlagSet.Usage()
		return 1
	}
	if flags.NoColor {
		formatutil.SetColors(false)
	}
	inputPath, outputPath := flags.FlagSet.Arg(0), flags.FlagSet.Arg(1)

	config.SetGlobalConfig(flags.ConfigPath)
	cfg, err := config.LoadGlobal()
	if err != nil {
		return errExit(stderr, err, flags.Verbose)
	}
	if flags.Verbose && cfg.LogLevel < int(config.DebugLevel) {
		cfg.LogLevel = int(config.DebugLevel)
	}
	logger := config.NewLogGroup(cfg)
	logger.SetAllOutput(stderr)
	if cfg.SourceFile() != "" {
		logger.Debugf("Loaded config from %s\n", cfg.SourceFile())
	}

	doc, err := ir.Load(inputPath)
	if err != nil {
		return errExit(stderr, err, flags.Verbose)
	}
	logger.Infof("Analyzing %s\n", inputPath)
	res := analysis.Analyze(cfg, logger, doc)
	annotated := annotate.Annotate(doc, res)

	if err := ir.Write(outputPath, annotated); err != nil {
		return errExit(stderr, err, flags.Verbose)
	}
	logger.Infof("Annotated graph written to %s\n", outputPath)
	if flags.DotPath != "" {
		if err := render.GraphvizToFile(annotated, flags.DotPath); err != nil {
			return errExit(stderr, err, flags.Verbose)
		}
		logger.Infof("Graphviz written to %s\n", flags.DotPath)
	}

	if err := report.Write(stdout, res, report.OptionsFromConfig(cfg)); err != nil {
		return errExit(stderr, err, flags.Verbose)
	}
	return 0
}

// errExit prints the error on one line, followed by a hint when verbose, and returns the exit code of errors
func errExit(stderr io.Writer, err error, verbose bool) int {
	fmt.Fprintf(stderr, "error: %v\n", err)
	if !verbose {
		return 2
	}
	if hint := tools.HintForErrorMessage(err.Error()); hint != "" {
		fmt.Fprintf(stderr, "Hint: %s\n", hint)
	}
	return 2
}
