// Package source provides pluggable repository sources: given a project
// identifier, a source yields the repository descriptors the bulk
// orchestrator operates on.
package source

import (
	"context"
	"sort"
	"strings"

	"github.com/steveant/mgit/pkg/bulk"
	"github.com/steveant/mgit/pkg/config"
	"gitlab.com/tozd/go/errors"
)

// Factory creates a source from the loaded configuration.
type Factory func(ctx context.Context, cfg *config.Config) (bulk.Source, error)

var registry = map[string]Factory{}

// Register makes a source constructor available under name.
func Register(name string, factory Factory) {
	registry[name] = factory
}

// New builds the source named in the configuration.
func New(ctx context.Context, cfg *config.Config) (bulk.Source, error) {
	factory, ok := registry[cfg.Source]
	if !ok {
		options := make([]string, 0, len(registry))
		for k := range registry {
			options = append(options, k)
		}
		sort.Strings(options)
		return nil, errors.Errorf("source %s not found, options: %s", cfg.Source, strings.Join(options, ", "))
	}
	return factory(ctx, cfg)
}
