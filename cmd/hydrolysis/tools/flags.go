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

// Package tools contains the flag parsing and error interpretation of the hydrolysis command.
package tools

import (
	"flag"
	"fmt"
	"io"
)

// Flags represents the parsed command line of hydrolysis
type Flags struct {
	FlagSet    *flag.FlagSet
	ConfigPath string
	Verbose    bool
	DotPath    string
	NoColor    bool
	Version    bool
}

// NewFlags returns the parsed flags of the command line args, without the program name. Parsing errors, and the
// help message requested by -help, are printed on output. The error is flag.ErrHelp when -help was requested.
func NewFlags(name string, args []string, usage string, output io.Writer) (Flags, error) {
	cmd := flag.NewFlagSet(name, flag.ContinueOnError)
	cmd.SetOutput(output)
	configPath := cmd.String("config", "", "config file path for analysis")
	verbose := cmd.Bool("verbose", false, "debug logging and error hints on standard error")
	dotPath := cmd.String("dot", "", "output file for the graphviz representation of the annotated graph")
	noColor := cmd.Bool("no-color", false, "never color the report")
	version := cmd.Bool("version", false, "print the version and exit")
	SetUsage(cmd, usage, output)
	if err := cmd.Parse(args); err != nil {
		return Flags{}, err
	}
	return Flags{
		FlagSet:    cmd,
		ConfigPath: *configPath,
		Verbose:    *verbose,
		DotPath:    *dotPath,
		NoColor:    *noColor,
		Version:    *version,
	}, nil
}

// SetUsage sets cmd's usage (for --help flag) to output the string cmdUsage
// followed by each flag's documentation.
func SetUsage(cmd *flag.FlagSet, cmdUsage string, output io.Writer) {
	cmd.Usage = func() {
		fmt.Fprintf(output, "%s\n", cmdUsage)
		fmt.Fprintf(output, "Options:\n")
		cmd.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(output, "  %s: %s (default: %q)\n", f.Name, f.Usage, f.DefValue)
		})
	}
}
