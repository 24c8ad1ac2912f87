package commands

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/steveant/mgit/pkg/bulk"
	"github.com/steveant/mgit/pkg/config"
	"github.com/steveant/mgit/pkg/events"
	"github.com/steveant/mgit/pkg/gitexec"
	"github.com/steveant/mgit/pkg/report"
	"github.com/steveant/mgit/pkg/source"
	"gitlab.com/tozd/go/errors"

	// registered repository sources
	_ "github.com/steveant/mgit/pkg/source/github"
	_ "github.com/steveant/mgit/pkg/source/static"
)

// runFlags holds the per-command overrides on top of the config file.
type runFlags struct {
	configFile  string
	dest        string
	updateMode  string
	concurrency int
	include     []string
	exclude     []string
	dryRun      bool
	verbose     bool
	progressBar bool
}

func addRunFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVarP(&f.configFile, "config", "c", ".mgit.yaml", "config file path")
	cmd.Flags().StringVar(&f.dest, "dest", "", "override destination directory")
	cmd.Flags().StringVar(&f.updateMode, "update-mode", "", "what to do when a target exists: skip, pull or force")
	cmd.Flags().IntVar(&f.concurrency, "concurrency", 0, "max repositories processed at once")
	cmd.Flags().StringSliceVar(&f.include, "include", nil, "only process repositories matching these patterns")
	cmd.Flags().StringSliceVar(&f.exclude, "exclude", nil, "drop repositories matching these patterns")
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report what would be done without touching anything")
	cmd.Flags().BoolVarP(&f.verbose, "verbose", "v", false, "print per-repository progress milestones")
	cmd.Flags().BoolVar(&f.progressBar, "progress", false, "render a progress bar instead of per-milestone output")
}

// runBulk wires config, source, executor, bus and reporters together and
// drives one run of the given kind.
func runBulk(cmd *cobra.Command, args []string, kind bulk.OperationKind, f *runFlags) error {
	ctx := cmd.Context()
	logger := zerolog.Ctx(ctx)

	cfg, err := config.Load(ctx, f.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	applyOverrides(cfg, f)

	project := cfg.Project
	if len(args) > 0 {
		project = args[0]
	}
	if project == "" {
		return errors.Errorf("no project given: pass one as an argument or set it in the config")
	}

	opts, err := cfg.Options()
	if err != nil {
		return errors.Errorf("building run options: %w", err)
	}

	src, err := source.New(ctx, cfg)
	if err != nil {
		return errors.Errorf("creating repository source: %w", err)
	}

	bus := events.NewBus(logger)
	metrics := report.NewMetrics(*logger)
	metrics.Attach(bus)
	console := report.NewConsole(os.Stdout, f.verbose)
	if f.progressBar {
		report.NewProgress().Attach(bus)
	} else {
		console.Attach(bus)
	}

	orch, err := bulk.NewOrchestrator(bulk.OrchestratorOptions{
		Source:   src,
		Executor: gitexec.New(),
		Bus:      bus,
	})
	if err != nil {
		return errors.Errorf("creating orchestrator: %w", err)
	}

	opctx := bulk.NewContext(project, cfg.Destination, opts)
	var res bulk.Result
	switch kind {
	case bulk.KindClone:
		res, err = orch.RunClone(ctx, opctx)
	case bulk.KindPull:
		res, err = orch.RunPull(ctx, opctx)
	}
	if err != nil {
		return errors.Errorf("running bulk %s: %w", kind, err)
	}

	console.Summary(res)
	if res.Failed > 0 {
		return errors.Errorf("%d of %d operations failed", res.Failed, res.Total)
	}
	return nil
}

func applyOverrides(cfg *config.Config, f *runFlags) {
	if f.dest != "" {
		cfg.Destination = f.dest
	}
	if f.updateMode != "" {
		cfg.UpdateMode = f.updateMode
	}
	if f.concurrency > 0 {
		cfg.Concurrency = f.concurrency
	}
	if len(f.include) > 0 {
		cfg.Include = f.include
	}
	if len(f.exclude) > 0 {
		cfg.Exclude = f.exclude
	}
	if f.dryRun {
		cfg.DryRun = true
	}
}
