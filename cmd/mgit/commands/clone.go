package commands

import (
	"github.com/spf13/cobra"
	"github.com/steveant/mgit/pkg/bulk"
)

// NewCloneCmd creates a new clone command
func NewCloneCmd() *cobra.Command {
	var flags runFlags
	cmd := &cobra.Command{
		Use:   "clone [project]",
		Short: "Clone every repository of a project",
		Long: `Clone fetches the repository list for a project from the configured
source and clones each repository below the destination directory.
Repositories that already exist locally are handled according to the
update mode: skipped (default), pulled, or removed and re-cloned.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBulk(cmd, args, bulk.KindClone, &flags)
		},
	}
	addRunFlags(cmd, &flags)
	return cmd
}
