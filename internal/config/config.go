// Package config loads the optional YAML description of the external
// toolchain program.
//
// A configuration file looks like this, every key is optional:
//
//	bin: /usr/local/bin/serpent
//	dir: compiler
//	env:
//	  - PYTHONPATH=.
//	commands:
//	  parse: parse
//	  compile: compile
//	  assemble: compile_to_assembly
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mna/fixrun/internal/toolchain"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the exec toolchain.
type Config struct {
	Bin      string   `yaml:"bin"`
	Dir      string   `yaml:"dir"`
	Env      []string `yaml:"env"`
	Commands Commands `yaml:"commands"`
}

// Commands maps each stage to the command of the toolchain program.
type Commands struct {
	Parse    string `yaml:"parse"`
	Compile  string `yaml:"compile"`
	Assemble string `yaml:"assemble"`
}

// Load reads and decodes the configuration file at path. Unknown keys are
// an error. An empty file is a valid, empty configuration.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	cfg, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes the YAML configuration in b.
func Parse(b []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &cfg, nil
}

// Exec returns the exec toolchain described by the configuration.
func (c *Config) Exec() toolchain.Exec {
	return toolchain.Exec{
		Bin: c.Bin,
		Dir: c.Dir,
		Env: c.Env,
		Commands: toolchain.Commands{
			Parse:    c.Commands.Parse,
			Compile:  c.Commands.Compile,
			Assemble: c.Commands.Assemble,
		},
	}
}
