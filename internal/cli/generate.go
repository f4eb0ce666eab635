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
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-datagen/internal/generator"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
	"github.com/pgEdge/pgedge-datagen/internal/transport"
)

type generateOptions struct {
	entity string
	amount int
	dryRun bool
	print  bool
}

func (a *app) newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate records of one entity type",
		Long: `Generate a batch of records of one entity type and submit it to the
configured transport. With --dry-run nothing is sent.

Example:
  pgedge-datagen generate -e user -a 10
  pgedge-datagen generate --entity flight --amount 50 --dry-run --print
  pgedge-datagen generate -e payment -a 100 --transport kafka`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.entity, "entity", "e", "",
		"entity type to generate")
	cmd.Flags().IntVarP(&opts.amount, "amount", "a", 0,
		"number of records to generate")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false,
		"generate without sending")
	cmd.Flags().BoolVar(&opts.print, "print", false,
		"print generated records as JSON after a dry run")
	_ = cmd.MarkFlagRequired("entity")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	entityType, err := a.registry.Resolve(opts.entity)
	if err != nil {
		return err
	}
	if opts.amount < 1 {
		return fmt.Errorf("%w: %d (must be at least 1)", generator.ErrInvalidAmount, opts.amount)
	}
	if opts.print && !opts.dryRun {
		return fmt.Errorf("--print requires --dry-run")
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

	logging.Info().
		Str("entity", entityType.String()).
		Int("amount", opts.amount).
		Bool("dry_run", opts.dryRun).
		Msg("Generating records")

	batch, err := gen.Generate(entityType, opts.amount)
	if err != nil {
		return err
	}

	res := disp.Dispatch(ctx, batch, opts.dryRun)
	if err := res.Err(); err != nil {
		return err
	}
	if opts.print {
		return transport.NewWriter(cmd.OutOrStdout()).Print(batch)
	}
	return nil
}
