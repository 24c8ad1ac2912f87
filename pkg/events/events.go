// Package events is the in-process publish/subscribe hub that decouples
// the bulk orchestrator from progress and metrics observers.
package events

// Kind tags every event; subscription and dispatch go purely by this tag.
type Kind int

const (
	KindBulkStarted Kind = iota
	KindBulkCompleted
	KindRepoStarted
	KindRepoProgress
	KindRepoCompleted
	KindRepoFailed
	KindRepoSkipped
)

// AllKinds lists every event kind, for subscribers that want the full stream.
var AllKinds = []Kind{
	KindBulkStarted,
	KindBulkCompleted,
	KindRepoStarted,
	KindRepoProgress,
	KindRepoCompleted,
	KindRepoFailed,
	KindRepoSkipped,
}

func (k Kind) String() string {
	switch k {
	case KindBulkStarted:
		return "bulk_started"
	case KindBulkCompleted:
		return "bulk_completed"
	case KindRepoStarted:
		return "repo_started"
	case KindRepoProgress:
		return "repo_progress"
	case KindRepoCompleted:
		return "repo_completed"
	case KindRepoFailed:
		return "repo_failed"
	case KindRepoSkipped:
		return "repo_skipped"
	default:
		return "unknown"
	}
}

// Event is an immutable value published to the bus.
type Event interface {
	Kind() Kind
}

// BulkStarted is published once per run, before any per-repository event.
type BulkStarted struct {
	Project   string
	Operation string // "clone" or "pull"
	Total     int
}

func (BulkStarted) Kind() Kind { return KindBulkStarted }

// BulkCompleted is published once per run, after every per-repository
// operation reached a terminal state.
type BulkCompleted struct {
	Project   string
	Operation string
	Total     int
	Succeeded int
	Failed    int
	Skipped   int
}

func (BulkCompleted) Kind() Kind { return KindBulkCompleted }

// RepoEvent carries the fields shared by all per-repository events.
// OperationID is unique per operation within a run so subscribers can
// correlate a sequence of events to one repository.
type RepoEvent struct {
	OperationID int64
	Repo        string
	Operation   string
}

// RepoStarted is the first event for a repository, published once it is
// admitted past the concurrency bound.
type RepoStarted struct {
	RepoEvent
	Dest string
}

func (RepoStarted) Kind() Kind { return KindRepoStarted }

// RepoProgress reports a user-visible milestone, e.g. "cloning".
type RepoProgress struct {
	RepoEvent
	Message string
}

func (RepoProgress) Kind() Kind { return KindRepoProgress }

// RepoCompleted is the terminal event for a successful operation.
type RepoCompleted struct {
	RepoEvent
}

func (RepoCompleted) Kind() Kind { return KindRepoCompleted }

// RepoFailed is the terminal event for a failed operation.
type RepoFailed struct {
	RepoEvent
	Error string
}

func (RepoFailed) Kind() Kind { return KindRepoFailed }

// RepoSkipped is the terminal event for an operation skipped by policy.
type RepoSkipped struct {
	RepoEvent
	Reason string
}

func (RepoSkipped) Kind() Kind { return KindRepoSkipped }
