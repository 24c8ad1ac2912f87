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

package github

import (
	"context"
	"net/http"
	"os"

	"github.com/google/go-github/v60/github"
	"github.com/rs/zerolog"
	"github.com/steveant/mgit/pkg/bulk"
	"github.com/steveant/mgit/pkg/config"
	"github.com/steveant/mgit/pkg/source"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/oauth2"
)

func init() {
	source.Register("github", New)
}

// 🎯 Source lists the repositories of a GitHub organization or user
type Source struct {
	client *github.Client
}

// 🏭 New creates a new GitHub source. An API token is read from the
// configured environment variable; without one the client is anonymous
// and subject to the unauthenticated rate limit.
func New(ctx context.Context, cfg *config.Config) (bulk.Source, error) {
	logger := zerolog.Ctx(ctx)

	httpClient := http.DefaultClient
	if token := os.Getenv(cfg.TokenEnv); token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		httpClient = oauth2.NewClient(ctx, ts)
	} else {
		logger.Debug().Str("env", cfg.TokenEnv).Msg("no token set, using anonymous client")
	}

	return &Source{client: github.NewClient(httpClient)}, nil
}

// 📂 ListRepositories returns every repository of the given organization,
// falling back to a user account when the organization does not exist.
func (s *Source) ListRepositories(ctx context.Context, project string) ([]bulk.Repository, error) {
	repos, err := s.listByOrg(ctx, project)
	if err != nil {
		var ghErr *github.ErrorResponse
		if !errors.As(err, &ghErr) || ghErr.Response.StatusCode != http.StatusNotFound {
			return nil, errors.Errorf("listing repositories for organization %s: %w", project, err)
		}
		repos, err = s.listByUser(ctx, project)
		if err != nil {
			return nil, errors.Errorf("listing repositories for user %s: %w", project, err)
		}
	}
	return repos, nil
}

func (s *Source) listByOrg(ctx context.Context, org string) ([]bulk.Repository, error) {
	opt := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var out []bulk.Repository
	for {
		page, resp, err := s.client.Repositories.ListByOrg(ctx, org, opt)
		if err != nil {
			return nil, err
		}
		for _, r := range page {
			out = append(out, toRepository(r, org))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opt.Page = resp.NextPage
	}
}

func (s *Source) listByUser(ctx context.Context, user string) ([]bulk.Repository, error) {
	opt := &github.RepositoryListByUserOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var out []bulk.Repository
	for {
		page, resp, err := s.client.Repositories.ListByUser(ctx, user, opt)
		if err != nil {
			return nil, err
		}
		for _, r := range page {
			out = append(out, toRepository(r, user))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opt.Page = resp.NextPage
	}
}

// 🔄 toRepository maps a GitHub API repository onto the bulk descriptor
func toRepository(r *github.Repository, project string) bulk.Repository {
	return bulk.Repository{
		Name:          r.GetName(),
		CloneURL:      r.GetCloneURL(),
		Organization:  r.GetOwner().GetLogin(),
		Project:       project,
		Disabled:      r.GetArchived() || r.GetDisabled(),
		DefaultBranch: r.GetDefaultBranch(),
	}
}
