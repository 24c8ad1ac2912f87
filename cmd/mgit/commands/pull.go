package commands

import (
	"github.com/spf13/cobra"
	"github.com/steveant/mgit/pkg/bulk"
)

// NewPullCmd creates a new pull command
func NewPullCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "pull [project]",
		Short: "Pull every repository of a project",
		Long: `Pull updates existing local checkouts of a project's repositories.
A repository without a local checkout fails unless the update mode is
force, in which case it is cloned fresh.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(cmd, args, bulk.KindPull, &flags)
		},
	}
	addRunFlags(cmd, &flags)
	return cmd
}
