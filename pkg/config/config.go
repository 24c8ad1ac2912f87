// Copyright 2025 Steve Anthony
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/steveant/mgit/pkg/bulk"
	"gitlab.com/tozd/go/errors"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 📦 RepositoryEntry is one repository served by the static source
type RepositoryEntry struct {
	Name          string `json:"name" yaml:"name"`
	URL           string `json:"url" yaml:"url"`
	DefaultBranch string `json:"default_branch,omitempty" yaml:"default_branch,omitempty"`
	Disabled      bool   `json:"disabled,omitempty" yaml:"disabled,omitempty"`
}

// 📚 Config represents the complete configuration
type Config struct {
	Source       string            `json:"source,omitempty" yaml:"source,omitempty"`           // repository source name (github/static)
	Project      string            `json:"project,omitempty" yaml:"project,omitempty"`         // default project/organization
	Destination  string            `json:"destination" yaml:"destination"`                     // local root for checkouts
	Concurrency  int               `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // max operations in flight
	UpdateMode   string            `json:"update_mode,omitempty" yaml:"update_mode,omitempty"` // skip/pull/force
	Include      []string          `json:"include,omitempty" yaml:"include,omitempty"`
	Exclude      []string          `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	DryRun       bool              `json:"dry_run,omitempty" yaml:"dry_run,omitempty"`
	TokenEnv     string            `json:"token_env,omitempty" yaml:"token_env,omitempty"` // env var holding the API token
	Repositories []RepositoryEntry `json:"repositories,omitempty" yaml:"repositories,omitempty"`
}

// 🎯 Load loads the configuration from a file
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	cfg, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// ✅ Validate checks the configuration and applies defaults
func (c *Config) Validate() error {
	if c.Source == "" {
		c.Source = "github"
	}
	if c.Destination == "" {
		return errors.Errorf("destination is required")
	}
	if c.Concurrency < 0 {
		return errors.Errorf("concurrency must be positive, got %d", c.Concurrency)
	}
	if c.Concurrency == 0 {
		c.Concurrency = bulk.DefaultConcurrency
	}
	if c.TokenEnv == "" {
		c.TokenEnv = "GITHUB_TOKEN"
	}
	if _, err := bulk.ParseUpdateMode(c.UpdateMode); err != nil {
		return err
	}
	return nil
}

// 🔧 Options converts the configuration into run options
func (c *Config) Options() (bulk.Options, error) {
	mode, err := bulk.ParseUpdateMode(c.UpdateMode)
	if err != nil {
		return bulk.Options{}, err
	}
	return bulk.Options{
		UpdateMode:  mode,
		Concurrency: c.Concurrency,
		Include:     c.Include,
		Exclude:     c.Exclude,
		DryRun:      c.DryRun,
	}, nil
}
