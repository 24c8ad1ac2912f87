package report

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/steveant/mgit/pkg/events"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	bus := events.NewBus(nil)
	metrics := NewMetrics(zerolog.Nop())
	metrics.Attach(bus)

	bus.Publish(events.BulkStarted{Project: "acme", Operation: "clone", Total: 3})
	for i := int64(1); i <= 3; i++ {
		bus.Publish(events.RepoStarted{RepoEvent: events.RepoEvent{OperationID: i}})
	}
	bus.Publish(events.RepoCompleted{RepoEvent: events.RepoEvent{OperationID: 1}})
	bus.Publish(events.RepoFailed{RepoEvent: events.RepoEvent{OperationID: 2}, Error: "boom"})
	bus.Publish(events.RepoSkipped{RepoEvent: events.RepoEvent{OperationID: 3}, Reason: "exists"})
	bus.Publish(events.BulkCompleted{Project: "acme", Operation: "clone", Total: 3, Succeeded: 1, Failed: 1, Skipped: 1})

	counts := metrics.Snapshot()
	assert.Equal(t, 3, counts.Started)
	assert.Equal(t, 1, counts.Completed)
	assert.Equal(t, 1, counts.Failed)
	assert.Equal(t, 1, counts.Skipped)
	assert.GreaterOrEqual(t, counts.Duration, time.Duration(0)) // recorded once the run completes
}

func TestMetrics_ResetOnNewRun(t *testing.T) {
	bus := events.NewBus(nil)
	metrics := NewMetrics(zerolog.Nop())
	metrics.Attach(bus)

	bus.Publish(events.BulkStarted{Total: 1})
	bus.Publish(events.RepoStarted{RepoEvent: events.RepoEvent{OperationID: 1}})
	bus.Publish(events.RepoCompleted{RepoEvent: events.RepoEvent{OperationID: 1}})
	bus.Publish(events.BulkCompleted{Total: 1, Succeeded: 1})

	bus.Publish(events.BulkStarted{Total: 2})
	counts := metrics.Snapshot()
	assert.Zero(t, counts.Started)
	assert.Zero(t, counts.Completed)
}
