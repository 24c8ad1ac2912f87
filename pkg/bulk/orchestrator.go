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

package bulk

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/steveant/mgit/pkg/events"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/semaphore"
)

// Source yields repository descriptors for a project. A source failure is
// fatal to the whole run.
type Source interface {
	ListRepositories(ctx context.Context, project string) ([]Repository, error)
}

// Executor performs single-repository git primitives. Destructive removal
// of an existing directory is done by the orchestrator, not the executor.
type Executor interface {
	CloneRepository(ctx context.Context, repo Repository, dest string) error
	PullRepository(ctx context.Context, path string) error
	RepositoryExists(path string) bool
}

// OrchestratorOptions contains the collaborators of an Orchestrator.
type OrchestratorOptions struct {
	Source   Source
	Executor Executor
	Bus      *events.Bus
}

// Orchestrator drives one bulk run: it enumerates repositories, applies the
// update-mode policy, dispatches to the executor under the concurrency
// bound, and aggregates a Result.
type Orchestrator struct {
	source Source
	exec   Executor
	bus    *events.Bus

	// filesystem seams, overridable in tests
	dirExists func(path string) bool
	removeAll func(path string) error
}

// NewOrchestrator creates an orchestrator with the given collaborators.
func NewOrchestrator(opts OrchestratorOptions) (*Orchestrator, error) {
	if opts.Source == nil {
		return nil, errors.Errorf("source is required")
	}
	if opts.Executor == nil {
		return nil, errors.Errorf("executor is required")
	}
	if opts.Bus == nil {
		return nil, errors.Errorf("event bus is required")
	}
	return &Orchestrator{
		source:    opts.Source,
		exec:      opts.Executor,
		bus:       opts.Bus,
		dirExists: dirExists,
		removeAll: os.RemoveAll,
	}, nil
}

func dirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// RunClone clones every repository of the context's project.
func (o *Orchestrator) RunClone(ctx context.Context, opctx *Context) (Result, error) {
	return o.run(ctx, opctx, KindClone)
}

// RunPull pulls every repository of the context's project.
func (o *Orchestrator) RunPull(ctx context.Context, opctx *Context) (Result, error) {
	return o.run(ctx, opctx, KindPull)
}

func (o *Orchestrator) run(ctx context.Context, opctx *Context, kind OperationKind) (Result, error) {
	logger := zerolog.Ctx(ctx).With().
		Str("project", opctx.Project).
		Stringer("operation", kind).
		Logger()

	repos, err := o.source.ListRepositories(ctx, opctx.Project)
	if err != nil {
		return Result{}, errors.Errorf("listing repositories for %s: %w", opctx.Project, err)
	}

	filtered := filterRepositories(repos, opctx.Options.Include, opctx.Options.Exclude)
	logger.Debug().
		Int("listed", len(repos)).
		Int("filtered", len(filtered)).
		Msg("enumerated repositories")

	ops := make([]*RepoOperation, 0, len(filtered))
	for _, repo := range filtered {
		dest := filepath.Join(opctx.Destination, repo.Name)
		ops = append(ops, opctx.addOperation(repo, kind, dest))
	}

	o.bus.Publish(events.BulkStarted{
		Project:   opctx.Project,
		Operation: kind.String(),
		Total:     len(ops),
	})

	sem := semaphore.NewWeighted(int64(opctx.Options.Concurrency))
	var wg sync.WaitGroup
	for _, op := range ops {
		wg.Add(1)
		go func(op *RepoOperation) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				o.failOp(opctx, op, fmt.Sprintf("acquiring concurrency slot: %v", err))
				return
			}
			defer sem.Release(1)
			o.process(ctx, opctx, op)
		}(op)
	}
	wg.Wait()

	res := opctx.result()
	o.bus.Publish(events.BulkCompleted{
		Project:   opctx.Project,
		Operation: kind.String(),
		Total:     res.Total,
		Succeeded: res.Succeeded,
		Failed:    res.Failed,
		Skipped:   res.Skipped,
	})
	logger.Info().
		Int("total", res.Total).
		Int("succeeded", res.Succeeded).
		Int("failed", res.Failed).
		Int("skipped", res.Skipped).
		Msg("bulk operation completed")
	return res, nil
}

// process runs one operation from admission to its terminal state. Any
// panic is caught at this boundary so a broken operation never aborts its
// siblings or the run.
func (o *Orchestrator) process(ctx context.Context, opctx *Context, op *RepoOperation) {
	defer func() {
		if r := recover(); r != nil {
			o.failOp(opctx, op, fmt.Sprintf("unexpected panic: %v", r))
		}
	}()

	opctx.start(op)
	o.bus.Publish(events.RepoStarted{RepoEvent: o.repoEvent(op), Dest: op.Dest})

	if opctx.Options.DryRun {
		o.progressOp(op, fmt.Sprintf("would %s %s into %s", op.Kind, op.Repo.Name, op.Dest))
		o.completeOp(opctx, op)
		return
	}

	if op.Repo.Disabled {
		o.skipOp(opctx, op, "repository is disabled")
		return
	}

	o.apply(ctx, opctx, op)
}

// apply implements the update-mode policy for one operation.
func (o *Orchestrator) apply(ctx context.Context, opctx *Context, op *RepoOperation) {
	if !o.dirExists(op.Dest) {
		// Pulling requires an existing checkout; Force falls back to a
		// fresh clone instead.
		if op.Kind == KindPull && opctx.Options.UpdateMode != UpdateForce {
			o.failOp(opctx, op, fmt.Sprintf("cannot pull: %s does not exist", op.Dest))
			return
		}
		o.clone(ctx, opctx, op)
		return
	}

	switch opctx.Options.UpdateMode {
	case UpdateSkip:
		o.skipOp(opctx, op, "Directory already exists")
	case UpdatePull:
		if !o.exec.RepositoryExists(op.Dest) {
			o.skipOp(opctx, op, fmt.Sprintf("%s exists but is not a git repository", op.Dest))
			return
		}
		o.pull(ctx, opctx, op)
	case UpdateForce:
		o.progressOp(op, "removing existing directory")
		if err := o.removeAll(op.Dest); err != nil {
			o.failOp(opctx, op, fmt.Sprintf("removing %s: %v", op.Dest, err))
			return
		}
		o.clone(ctx, opctx, op)
	}
}

func (o *Orchestrator) clone(ctx context.Context, opctx *Context, op *RepoOperation) {
	o.progressOp(op, fmt.Sprintf("cloning %s", op.Repo.CloneURL))
	if err := o.exec.CloneRepository(ctx, op.Repo, op.Dest); err != nil {
		o.failOp(opctx, op, fmt.Sprintf("cloning %s: %v", op.Repo.Name, err))
		return
	}
	o.completeOp(opctx, op)
}

func (o *Orchestrator) pull(ctx context.Context, opctx *Context, op *RepoOperation) {
	o.progressOp(op, "pulling latest changes")
	if err := o.exec.PullRepository(ctx, op.Dest); err != nil {
		o.failOp(opctx, op, fmt.Sprintf("pulling %s: %v", op.Repo.Name, err))
		return
	}
	o.completeOp(opctx, op)
}

func (o *Orchestrator) repoEvent(op *RepoOperation) events.RepoEvent {
	return events.RepoEvent{
		OperationID: op.ID,
		Repo:        op.Repo.Name,
		Operation:   op.Kind.String(),
	}
}

func (o *Orchestrator) progressOp(op *RepoOperation, msg string) {
	o.bus.Publish(events.RepoProgress{RepoEvent: o.repoEvent(op), Message: msg})
}

func (o *Orchestrator) completeOp(opctx *Context, op *RepoOperation) {
	opctx.complete(op)
	o.bus.Publish(events.RepoCompleted{RepoEvent: o.repoEvent(op)})
}

func (o *Orchestrator) skipOp(opctx *Context, op *RepoOperation, reason string) {
	opctx.skip(op, reason)
	o.bus.Publish(events.RepoSkipped{RepoEvent: o.repoEvent(op), Reason: reason})
}

func (o *Orchestrator) failOp(opctx *Context, op *RepoOperation, message string) {
	opctx.fail(op, message)
	o.bus.Publish(events.RepoFailed{RepoEvent: o.repoEvent(op), Error: message})
}
