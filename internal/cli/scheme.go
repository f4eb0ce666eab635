//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package cli

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/scheme"
)

type schemeOptions struct {
	dryRun   bool
	parallel int
}

func (a *app) newSchemeCmd() *cobra.Command {
	opts := &schemeOptions{}

	cmd := &cobra.Command{
		Use:   "scheme",
		Short: "Run the multi-entity generation scheme",
		Long: `Generate and submit every entity of the scheme in order. The standard
scheme creates users, employees, planes, flights that use those planes and
passengers. A different scheme can be set under 'scheme.entries' in the
config file.

A failed entity does not stop the scheme; the command exits non-zero when
any entity had failures.

Example:
  pgedge-datagen scheme
  pgedge-datagen scheme --dry-run
  pgedge-datagen scheme --parallel 4`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runScheme(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"generate without sending")
	cmd.Flags().IntVar(&opts.parallel, "parallel", 0,
		"number of batches dispatched concurrently (default: from config)")

	return cmd
}

func (a *app) runScheme(cmd *cobra.Command, opts *schemeOptions) error {
	if opts.parallel > 0 {
		a.cfg.Scheme.Parallel = opts.parallel
	}

	def, err := a.cfg.SchemeDefinition(a.registry)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(cmd.Context())
	defer cancel()

	disp, release, err := a.dispatcher(ctx, opts.dryRun)
	if err != nil {
		return err
	}
	defer release()

	gen := generator.New(a.registry, generator.Config{
		Seed:             a.cfg.Seed,
		ProgressInterval: a.cfg.ProgressInterval,
	})
	runner, err := scheme.NewRunner(def, gen, disp, scheme.RunnerConfig{
		Parallel: a.cfg.Scheme.Parallel,
	})
	if err != nil {
		return err
	}

	report := runner.Run(ctx, opts.dryRun)
	report.Log()
	return report.Err()
}
