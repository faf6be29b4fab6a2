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

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/awslabs/hydrolysis/analysis/semantics"
	"github.com/awslabs/hydrolysis/internal/funcutil"
	"gopkg.in/yaml.v3"
)

var (
	// The global config file
	configFile string
)

// SetGlobalConfig sets the global config filename
func SetGlobalConfig(filename string) {
	configFile = filename
}

// LoadGlobal loads the config file that has been set by SetGlobalConfig. If no file has been set, it returns the
// default config.
func LoadGlobal() (*Config, error) {
	if configFile == "" {
		return NewDefault(), nil
	}
	return Load(configFile)
}

// Config contains the options of the analyzer and the user's declarations about operators and types.
// To add elements to a config file, add fields to this struct.
// If some field is not defined in the config file, it will be empty/zero in the struct.
// private fields are not populated from a yaml file, but computed after initialization
type Config struct {
	Options

	sourceFile string

	// OperatorSemantics lists the user-declared semantics of operators. The first matching entry classifies the
	// operator, before the built-in tables.
	OperatorSemantics []OperatorSpec `yaml:"operator-semantics"`

	// LatticeTypes lists additional substrings identifying lattice types in edge type labels
	LatticeTypes []string `yaml:"lattice-types"`

	// FrameworkPaths lists additional substrings identifying files of the dataflow framework in backtraces. Frames in
	// those files are skipped when locating the user code that created a node.
	FrameworkPaths []string `yaml:"framework-paths"`
}

// Options holds the settings of a run of the analyzer that are not declarations about the analyzed program.
type Options struct {
	// Loglevel controls the verbosity of the tool
	LogLevel int `yaml:"log-level"`

	// NumRoutines is the number of goroutines used to certify the CALM-critical edges. The result does not depend
	// on it. Values <= 0 are replaced by DefaultNumRoutines.
	NumRoutines int `yaml:"num-routines"`

	// MaxReportOperations limits the number of rows of the operations table of the report
	MaxReportOperations int `yaml:"max-report-operations"`

	// MaxReportEdges limits the number of rows of the non-lattice edges table of the report
	MaxReportEdges int `yaml:"max-report-edges"`

	// MaxReportCycles limits the number of cycles listed in the report
	MaxReportCycles int `yaml:"max-report-cycles"`

	// SkipWitnessPaths removes the witness paths section from the report
	SkipWitnessPaths bool `yaml:"skip-witness-paths"`

	// SkipCycles removes the cycles section from the report
	SkipCycles bool `yaml:"skip-cycles"`

	// Suppress warnings
	SilenceWarn bool `yaml:"silence-warn"`
}

// NewDefault returns an empty default config.
func NewDefault() *Config {
	return &Config{
		sourceFile:        "",
		OperatorSemantics: nil,
		LatticeTypes:      nil,
		FrameworkPaths:    nil,
		Options: Options{
			LogLevel:            int(InfoLevel),
			NumRoutines:         DefaultNumRoutines,
			MaxReportOperations: DefaultMaxReportOperations,
			MaxReportEdges:      DefaultMaxReportEdges,
			MaxReportCycles:     DefaultMaxReportCycles,
			SkipWitnessPaths:    false,
			SkipCycles:          false,
			SilenceWarn:         false,
		},
	}
}

// Load reads a configuration from a file
func Load(filename string) (*Config, error) {
	b, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("could not read config file: %w", err)
	}
	return LoadBytes(filename, b)
}

// LoadBytes reads a configuration from the contents b of the file filename
func LoadBytes(filename string, b []byte) (*Config, error) {
	cfg := NewDefault()
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("could not unmarshal config file %s: %w", filename, err)
	}

	cfg.sourceFile = filename

	// If logLevel has not been specified (i.e. it is 0) set the default to Info
	if cfg.LogLevel == 0 {
		cfg.LogLevel = int(InfoLevel)
	}
	if cfg.NumRoutines <= 0 {
		cfg.NumRoutines = DefaultNumRoutines
	}
	if cfg.MaxReportOperations <= 0 {
		cfg.MaxReportOperations = DefaultMaxReportOperations
	}
	if cfg.MaxReportEdges <= 0 {
		cfg.MaxReportEdges = DefaultMaxReportEdges
	}
	if cfg.MaxReportCycles <= 0 {
		cfg.MaxReportCycles = DefaultMaxReportCycles
	}

	for i, spec := range cfg.OperatorSemantics {
		compiled, err := compileOperatorSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("in %s, operator-semantics[%d]: %w", filename, i, err)
		}
		cfg.OperatorSemantics[i] = compiled
	}

	return cfg, nil
}

// SourceFile returns the name of the file the config has been loaded from, or the empty string if the config is
// the default one.
func (c Config) SourceFile() string {
	return c.sourceFile
}

// Overrides returns the operator semantics declared in the config, in the order they must be tried.
func (c Config) Overrides() []semantics.Override {
	return funcutil.Map(c.OperatorSemantics, func(s OperatorSpec) semantics.Override { return s })
}

// Classifier returns the operator classifier extended with the declarations of the config
func (c Config) Classifier() *semantics.Classifier {
	return semantics.NewClassifier(c.Overrides(), c.LatticeTypes)
}

// IsFrameworkFile returns true if the file belongs to the dataflow framework, either by the built-in rules or
// because it contains one of the FrameworkPaths.
func (c Config) IsFrameworkFile(file string) bool {
	if semantics.IsFrameworkFile(file) {
		return true
	}
	return file != "" && funcutil.Exists(c.FrameworkPaths, func(p string) bool {
		return p != "" && strings.Contains(file, p)
	})
}

// Verbose returns true is the configuration verbosity setting is larger than Info (i.e. Debug or Trace)
func (c Config) Verbose() bool {
	return c.LogLevel >= int(DebugLevel)
}
