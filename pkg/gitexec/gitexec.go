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

// Package gitexec performs the single-repository git primitives the
// orchestrator dispatches to: clone, pull, and checkout detection.
package gitexec

import (
	"context"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/steveant/mgit/pkg/bulk"
	"gitlab.com/tozd/go/errors"
)

// Executor implements bulk.Executor with go-git.
type Executor struct{}

// New creates a git executor.
func New() *Executor {
	return &Executor{}
}

// CloneRepository clones repo into dest, checking out the default branch
// when the descriptor names one.
func (e *Executor) CloneRepository(ctx context.Context, repo bulk.Repository, dest string) error {
	opts := &git.CloneOptions{
		URL: repo.CloneURL,
	}
	if repo.DefaultBranch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(repo.DefaultBranch)
		opts.SingleBranch = true
	}
	if _, err := git.PlainCloneContext(ctx, dest, false, opts); err != nil {
		return errors.Errorf("cloning %s: %w", repo.CloneURL, err)
	}
	return nil
}

// PullRepository fast-forwards the checkout at path from origin.
// An already up-to-date worktree is not an error.
func (e *Executor) PullRepository(ctx context.Context, path string) error {
	repo, err := git.PlainOpen(path)
	if err != nil {
		return errors.Errorf("opening repository at %s: %w", path, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return errors.Errorf("getting worktree: %w", err)
	}
	err = wt.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return errors.Errorf("pulling %s: %w", path, err)
	}
	return nil
}

// RepositoryExists reports whether path holds a valid git repository.
func (e *Executor) RepositoryExists(path string) bool {
	_, err := git.PlainOpen(path)
	return err == nil
}
