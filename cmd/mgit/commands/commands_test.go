package commands

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/steveant/mgit/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommandsRegisterFlags(t *testing.T) {
	for _, cmd := range []*cobra.Command{NewCloneCmd(), NewPullCmd()} {
		for _, flag := range []string{
			"config", "dest", "update-mode", "concurrency",
			"include", "exclude", "dry-run", "verbose", "progress",
		} {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "%s is missing --%s", cmd.Name(), flag)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := NewVersionCmd()
	cmd.SetOut(&buf)
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "mgit version info")
}

func TestApplyOverrides(t *testing.T) {
	cfg := &config.Config{
		Destination: "/srv/repos",
		UpdateMode:  "pull",
		Concurrency: 4,
	}

	applyOverrides(cfg, &runFlags{dest: "/elsewhere", concurrency: 9, dryRun: true})

	assert.Equal(t, "/elsewhere", cfg.Destination)
	assert.Equal(t, 9, cfg.Concurrency)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, "pull", cfg.UpdateMode, "unset flags leave config values alone")
}
