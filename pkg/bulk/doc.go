/*
Package bulk applies one git operation (clone or pull) across every repository
of a project, under a concurrency bound, with per-repository outcome tracking.

	+-------------+        +--------------+
	|   Source    |------->| Orchestrator |
	| (repo list) |        | (run loop)   |
	+-------------+        +------+-------+
	                              |
	                    +---------+---------+
	                    |                   |
	              +-----+-----+      +------+------+
	              |  Executor |      |  Event Bus  |
	              | (git ops) |      | (observers) |
	              +-----------+      +-------------+

🎯 Purpose:
- Enumerates and filters the repositories of a project
- Runs one operation per repository under a semaphore-bounded goroutine
- Applies the update-mode policy when a local checkout already exists
- Aggregates a Result that classifies every repository exactly once

🔄 Flow:
1. List repository descriptors from the Source
2. Apply include filters, then exclude filters
3. Materialize one RepoOperation per surviving repository
4. Run all operations bounded by Options.Concurrency
5. Scan final statuses into a Result

⚡ Key Responsibilities:
  - The Pending → InProgress → {Completed|Failed|Skipped} state machine
  - Per-operation failure isolation: one broken repository never aborts
    its siblings or the run
  - Event publication: Started, Progress milestones and exactly one
    terminal event per operation, bracketed by run-level events

🤝 Interfaces:
- Source: yields repository descriptors; a source failure is fatal
- Executor: clone/pull/exists primitives against one repository
- events.Bus: the only coupling to progress and metrics observers

📝 Design Philosophy:
The orchestrator owns all mutation of the run's shared state. The
Context's operation and error lists are guarded by one mutex and only
touched through Context methods, so operation handlers running on
different goroutines can never race on them. Observers never feed back
into the run; the bus is publish-only from this package's view.
*/
package bulk
