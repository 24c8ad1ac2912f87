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

package report

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/steveant/mgit/pkg/events"
)

// 📊 Counts holds the per-kind event counters of one run
type Counts struct {
	Started   int
	Completed int
	Failed    int
	Skipped   int
	Duration  time.Duration
}

// 📟 Metrics records counters off the event stream and mirrors every
// event into the structured log
type Metrics struct {
	logger zerolog.Logger

	mu      sync.Mutex
	counts  Counts
	startAt time.Time
}

// 🏭 NewMetrics creates a metrics subscriber
func NewMetrics(logger zerolog.Logger) *Metrics {
	return &Metrics{logger: logger}
}

// 🔌 Attach subscribes the metrics recorder to the bus
func (m *Metrics) Attach(bus *events.Bus) {
	bus.SubscribeAll(m.handle)
}

func (m *Metrics) handle(e events.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch ev := e.(type) {
	case events.BulkStarted:
		m.counts = Counts{}
		m.startAt = time.Now()
		m.logger.Info().
			Str("project", ev.Project).
			Str("operation", ev.Operation).
			Int("total", ev.Total).
			Msg("bulk operation started")
	case events.BulkCompleted:
		m.counts.Duration = time.Since(m.startAt)
		m.logger.Info().
			Str("project", ev.Project).
			Int("succeeded", ev.Succeeded).
			Int("failed", ev.Failed).
			Int("skipped", ev.Skipped).
			Dur("duration", m.counts.Duration).
			Msg("bulk operation completed")
	case events.RepoStarted:
		m.counts.Started++
		m.logger.Debug().
			Int64("op", ev.OperationID).
			Str("repo", ev.Repo).
			Str("dest", ev.Dest).
			Msg("repository operation started")
	case events.RepoProgress:
		m.logger.Debug().
			Int64("op", ev.OperationID).
			Str("repo", ev.Repo).
			Msg(ev.Message)
	case events.RepoCompleted:
		m.counts.Completed++
		m.logger.Debug().
			Int64("op", ev.OperationID).
			Str("repo", ev.Repo).
			Msg("repository operation completed")
	case events.RepoFailed:
		m.counts.Failed++
		m.logger.Warn().
			Int64("op", ev.OperationID).
			Str("repo", ev.Repo).
			Str("error", ev.Error).
			Msg("repository operation failed")
	case events.RepoSkipped:
		m.counts.Skipped++
		m.logger.Debug().
			Int64("op", ev.OperationID).
			Str("repo", ev.Repo).
			Str("reason", ev.Reason).
			Msg("repository operation skipped")
	}
}

// 📈 Snapshot returns the current counters
func (m *Metrics) Snapshot() Counts {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.counts
}
