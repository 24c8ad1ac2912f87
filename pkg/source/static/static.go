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

// Package static serves the repository list embedded in the config file,
// for air-gapped setups without a reachable hosting provider API.
package static

import (
	"context"

	"github.com/steveant/mgit/pkg/bulk"
	"github.com/steveant/mgit/pkg/config"
	"github.com/steveant/mgit/pkg/source"
	"gitlab.com/tozd/go/errors"
)

func init() {
	source.Register("static", New)
}

// Source serves a fixed repository list.
type Source struct {
	repos []bulk.Repository
}

// New creates a static source from the config's repository entries.
func New(ctx context.Context, cfg *config.Config) (bulk.Source, error) {
	if len(cfg.Repositories) == 0 {
		return nil, errors.Errorf("static source requires at least one repository entry")
	}
	repos := make([]bulk.Repository, 0, len(cfg.Repositories))
	for _, entry := range cfg.Repositories {
		if entry.Name == "" || entry.URL == "" {
			return nil, errors.Errorf("static repository entries require name and url")
		}
		repos = append(repos, bulk.Repository{
			Name:          entry.Name,
			CloneURL:      entry.URL,
			Project:       cfg.Project,
			Disabled:      entry.Disabled,
			DefaultBranch: entry.DefaultBranch,
		})
	}
	return &Source{repos: repos}, nil
}

// ListRepositories returns the configured list; project is informational
// only for this source.
func (s *Source) ListRepositories(ctx context.Context, project string) ([]bulk.Repository, error) {
	out := make([]bulk.Repository, len(s.repos))
	copy(out, s.repos)
	return out, nil
}
