package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/steveant/mgit/cmd/mgit/commands"
)

var (
	// Flags
	debug bool
	quiet bool
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mgit",
		Short:         "Bulk git clone/pull across the repositories of a project",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(setupLogging().WithContext(cmd.Context()))
		},
	}

	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "log errors only")

	cmd.AddCommand(commands.NewCloneCmd())
	cmd.AddCommand(commands.NewPullCmd())
	cmd.AddCommand(commands.NewVersionCmd())

	return cmd
}

// setupLogging configures zerolog based on flags
func setupLogging() zerolog.Logger {
	level := zerolog.InfoLevel
	if quiet {
		level = zerolog.ErrorLevel
	}
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).Level(level).With().Timestamp().Logger()
}
