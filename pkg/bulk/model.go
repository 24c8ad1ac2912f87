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
	"strings"
	"sync"
	"time"

	"gitlab.com/tozd/go/errors"
)

// OperationKind is the git action being orchestrated across repositories.
type OperationKind int

const (
	KindClone OperationKind = iota
	KindPull
)

func (k OperationKind) String() string {
	switch k {
	case KindClone:
		return "clone"
	case KindPull:
		return "pull"
	default:
		return "unknown"
	}
}

// UpdateMode governs what happens when a target directory already exists.
type UpdateMode int

const (
	UpdateSkip UpdateMode = iota
	UpdatePull
	UpdateForce
)

func (m UpdateMode) String() string {
	switch m {
	case UpdateSkip:
		return "skip"
	case UpdatePull:
		return "pull"
	case UpdateForce:
		return "force"
	default:
		return "unknown"
	}
}

// ParseUpdateMode parses a user-supplied mode name.
func ParseUpdateMode(s string) (UpdateMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "skip":
		return UpdateSkip, nil
	case "pull":
		return UpdatePull, nil
	case "force":
		return UpdateForce, nil
	default:
		return UpdateSkip, errors.Errorf("unknown update mode %q, options: skip, pull, force", s)
	}
}

// Status is the state of a single repository operation.
type Status int

const (
	StatusPending Status = iota
	StatusInProgress
	StatusCompleted
	StatusFailed
	StatusSkipped
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusInProgress:
		return "in_progress"
	case StatusCompleted:
		return "completed"
	case StatusFailed:
		return "failed"
	case StatusSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transitions may occur from s.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusSkipped
}

// Repository is an immutable descriptor produced by a repository source.
type Repository struct {
	Name          string // short name, e.g. "githerd"
	CloneURL      string // e.g. "https://github.com/org/githerd.git"
	Organization  string
	Project       string // optional grouping below the organization
	Disabled      bool   // archived or disabled on the remote
	DefaultBranch string // optional; empty means remote HEAD
}

// RepoOperation tracks one repository through a single run.
// Mutated only via Context methods, which hold the context lock.
type RepoOperation struct {
	ID     int64 // unique within the run, correlates events
	Repo   Repository
	Kind   OperationKind
	Dest   string // target path on the local filesystem
	Status Status
	Reason string // skip reason or failure message, empty otherwise
}

// Complete reports whether the operation reached a terminal state.
func (op *RepoOperation) Complete() bool {
	return op.Status.Terminal()
}

// Successful reports whether the operation completed without failure or skip.
func (op *RepoOperation) Successful() bool {
	return op.Status == StatusCompleted
}

// Options is the immutable configuration for one run.
type Options struct {
	UpdateMode  UpdateMode
	Concurrency int      // max operations in flight; defaulted when <= 0
	Include     []string // keep repos matching any pattern, when non-empty
	Exclude     []string // then drop repos matching any pattern
	DryRun      bool
}

// DefaultConcurrency bounds runs that don't set an explicit limit.
const DefaultConcurrency = 4

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = DefaultConcurrency
	}
	return o
}

// OperationError records one failed repository operation.
type OperationError struct {
	Repo    string
	Kind    OperationKind
	Message string
	Time    time.Time
}

// Result is the immutable summary of one run.
type Result struct {
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
	Errors    []OperationError
}

// Context is the unit of work for one invocation. It owns the operation
// list and the error list, both of which are appended to and mutated by
// concurrently running operation handlers; all access goes through the
// embedded mutex.
type Context struct {
	Project     string
	Destination string
	Options     Options

	mu   sync.Mutex
	ops  []*RepoOperation
	errs []OperationError
}

// NewContext builds the unit of work for one run.
func NewContext(project, destination string, opts Options) *Context {
	return &Context{
		Project:     project,
		Destination: destination,
		Options:     opts.withDefaults(),
	}
}

// Operations returns a snapshot of the operation list in source order.
func (c *Context) Operations() []*RepoOperation {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*RepoOperation, len(c.ops))
	copy(out, c.ops)
	return out
}

// Errors returns a snapshot of the accumulated operation errors.
func (c *Context) Errors() []OperationError {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]OperationError, len(c.errs))
	copy(out, c.errs)
	return out
}

// addOperation appends one operation per surviving repository, in source order.
func (c *Context) addOperation(repo Repository, kind OperationKind, dest string) *RepoOperation {
	c.mu.Lock()
	defer c.mu.Unlock()
	op := &RepoOperation{
		ID:     int64(len(c.ops) + 1),
		Repo:   repo,
		Kind:   kind,
		Dest:   dest,
		Status: StatusPending,
	}
	c.ops = append(c.ops, op)
	return op
}

// transition moves op to status, refusing to leave a terminal state.
func (c *Context) transition(op *RepoOperation, status Status, reason string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if op.Status.Terminal() {
		return false
	}
	op.Status = status
	op.Reason = reason
	return true
}

func (c *Context) start(op *RepoOperation) {
	c.transition(op, StatusInProgress, "")
}

func (c *Context) complete(op *RepoOperation) {
	c.transition(op, StatusCompleted, "")
}

func (c *Context) skip(op *RepoOperation, reason string) {
	c.transition(op, StatusSkipped, reason)
}

// fail marks op failed and appends the error to the context's error list.
func (c *Context) fail(op *RepoOperation, message string) {
	if !c.transition(op, StatusFailed, message) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, OperationError{
		Repo:    op.Repo.Name,
		Kind:    op.Kind,
		Message: message,
		Time:    time.Now(),
	})
}

// result scans the final operation statuses into an immutable summary.
func (c *Context) result() Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	res := Result{Total: len(c.ops)}
	for _, op := range c.ops {
		switch op.Status {
		case StatusCompleted:
			res.Succeeded++
		case StatusFailed:
			res.Failed++
		case StatusSkipped:
			res.Skipped++
		}
	}
	res.Errors = make([]OperationError, len(c.errs))
	copy(res.Errors, c.errs)
	return res
}
