package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Terminal(t *testing.T) {
	assert.False(t, StatusPending.Terminal())
	assert.False(t, StatusInProgress.Terminal())
	assert.True(t, StatusCompleted.Terminal())
	assert.True(t, StatusFailed.Terminal())
	assert.True(t, StatusSkipped.Terminal())
}

func TestParseUpdateMode(t *testing.T) {
	tests := []struct {
		in      string
		want    UpdateMode
		wantErr bool
	}{
		{in: "", want: UpdateSkip},
		{in: "skip", want: UpdateSkip},
		{in: "Pull", want: UpdatePull},
		{in: " force ", want: UpdateForce},
		{in: "bogus", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseUpdateMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestContext_TerminalStatesAreFinal(t *testing.T) {
	opctx := NewContext("proj", "/tmp/repos", Options{})
	op := opctx.addOperation(Repository{Name: "a"}, KindClone, "/tmp/repos/a")

	opctx.start(op)
	opctx.complete(op)
	require.Equal(t, StatusCompleted, op.Status)

	// No transition leaves a terminal state.
	opctx.fail(op, "too late")
	assert.Equal(t, StatusCompleted, op.Status)
	assert.Empty(t, opctx.Errors())

	opctx.skip(op, "also too late")
	assert.Equal(t, StatusCompleted, op.Status)
}

func TestContext_FailRecordsOperationError(t *testing.T) {
	opctx := NewContext("proj", "/tmp/repos", Options{})
	op := opctx.addOperation(Repository{Name: "a"}, KindPull, "/tmp/repos/a")

	opctx.start(op)
	opctx.fail(op, "pull exploded")

	errs := opctx.Errors()
	require.Len(t, errs, 1)
	assert.Equal(t, "a", errs[0].Repo)
	assert.Equal(t, KindPull, errs[0].Kind)
	assert.Equal(t, "pull exploded", errs[0].Message)
	assert.False(t, errs[0].Time.IsZero())
}

func TestContext_Result(t *testing.T) {
	opctx := NewContext("proj", "/tmp/repos", Options{})
	a := opctx.addOperation(Repository{Name: "a"}, KindClone, "/tmp/repos/a")
	b := opctx.addOperation(Repository{Name: "b"}, KindClone, "/tmp/repos/b")
	c := opctx.addOperation(Repository{Name: "c"}, KindClone, "/tmp/repos/c")

	opctx.start(a)
	opctx.complete(a)
	opctx.start(b)
	opctx.fail(b, "nope")
	opctx.start(c)
	opctx.skip(c, "Directory already exists")

	res := opctx.result()
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 1, res.Succeeded)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "b", res.Errors[0].Repo)
}

func TestContext_OperationIDsAreUniquePerRun(t *testing.T) {
	opctx := NewContext("proj", "/tmp/repos", Options{})
	seen := map[int64]bool{}
	for i := 0; i < 10; i++ {
		op := opctx.addOperation(Repository{Name: "r"}, KindClone, "/tmp/repos/r")
		assert.False(t, seen[op.ID])
		seen[op.ID] = true
	}
}

func TestOptions_Defaults(t *testing.T) {
	opctx := NewContext("proj", "/tmp/repos", Options{})
	assert.Equal(t, DefaultConcurrency, opctx.Options.Concurrency)

	opctx = NewContext("proj", "/tmp/repos", Options{Concurrency: 16})
	assert.Equal(t, 16, opctx.Options.Concurrency)
}
