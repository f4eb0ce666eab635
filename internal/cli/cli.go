//-------------------------------------------------------------------------
//
// pgEdge Data Generator
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package cli implements the command-line interface for pgedge-datagen.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-datagen/internal/config"
	"github.com/pgEdge/pgedge-datagen/internal/dispatch"
	"github.com/pgEdge/pgedge-datagen/internal/entity"
	"github.com/pgEdge/pgedge-datagen/internal/logging"
	"github.com/pgEdge/pgedge-datagen/internal/transport"
	"github.com/pgEdge/pgedge-datagen/pkg/version"
)

// app holds the state shared by the commands of one root command.
type app struct {
	// Global flags
	cfgFile   string
	baseURL   string
	transport string
	logLevel  string
	logFile   string
	seed      uint64

	cfg      *config.Config
	registry *entity.Registry
}

// Execute runs the root command.
func Execute() error {
	return NewRootCommand().Execute()
}

// NewRootCommand builds the pgedge-datagen command tree.
func NewRootCommand() *cobra.Command {
	a := &app{registry: entity.Default()}

	rootCmd := &cobra.Command{
		Use:   "pgedge-datagen",
		Short: "Synthetic entity generator for REST services and data pipelines",
		Long: `pgedge-datagen generates realistic synthetic records for a set of
airline and payment entities and submits them in batches to a REST service,
a PostgreSQL database or a Kafka topic. Use --dry-run to generate without
sending anything.

` + entityHelp(a.registry),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.initConfig(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "",
		"config file (default: ./pgedge-datagen.yaml)")
	flags.StringVar(&a.baseURL, "base-url", "",
		"base URL of the target service (default: http://localhost:8080)")
	flags.StringVar(&a.transport, "transport", "",
		"live transport: "+strings.Join(transport.Kinds, ", "))
	flags.StringVar(&a.logLevel, "log-level", "",
		"log level (debug, info, warn, error)")
	flags.StringVar(&a.logFile, "log-file", "",
		"also write logs to this file")
	flags.Uint64Var(&a.seed, "seed", 0,
		"random seed for reproducible output (0 = random)")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(a.newEntitiesCmd())
	rootCmd.AddCommand(a.newGenerateCmd())
	rootCmd.AddCommand(a.newSchemeCmd())

	return rootCmd
}

func (a *app) initConfig(cmd *cobra.Command) error {
	var err error
	a.cfg, err = config.Load(a.cfgFile)
	if err != nil {
		return err
	}

	// Override with CLI flags
	if a.baseURL != "" {
		a.cfg.HTTP.BaseURL = a.baseURL
	}
	if a.transport != "" {
		a.cfg.Transport = a.transport
	}
	if a.logLevel != "" {
		a.cfg.LogLevel = a.logLevel
	}
	if a.logFile != "" {
		a.cfg.LogFile = a.logFile
	}
	if cmd.Flags().Changed("seed") {
		a.cfg.Seed = a.seed
	}

	// Reinitialize logger with config
	logging.Init(logging.Config{
		Level:  a.cfg.LogLevel,
		Pretty: true,
		File:   a.cfg.LogFile,
		Output: cmd.ErrOrStderr(),
	})

	return a.cfg.Validate()
}

// dispatcher returns a dispatcher for the requested mode and a function
// that releases the live transport. No live transport is built for dry
// runs.
func (a *app) dispatcher(ctx context.Context, dryRun bool) (*dispatch.Dispatcher, func(), error) {
	if dryRun {
		return dispatch.New(nil), func() {}, nil
	}
	if err := a.cfg.ValidateLive(); err != nil {
		return nil, nil, err
	}
	live, err := transport.New(ctx, a.cfg.TransportOptions(), a.registry)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create %s transport: %w", a.cfg.Transport, err)
	}
	release := func() {
		if err := live.Close(); err != nil {
			logging.Warn().Err(err).Str("transport", live.Name()).Msg("Failed to close transport")
		}
	}
	return dispatch.New(live), release, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case sig := <-sigChan:
			logging.Info().
				Str("signal", sig.String()).
				Msg("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}

func entityHelp(registry *entity.Registry) string {
	var b strings.Builder
	b.WriteString("Available entity types:\n")
	for _, def := range registry.Definitions() {
		fmt.Fprintf(&b, "  %-10s - %s\n", def.Type, def.Description)
	}
	return b.String()
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.Info())
		},
	}
}

func (a *app) newEntitiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "entities",
		Short: "List available entity types",
		Long: `List all entity types that can be generated, together with the
endpoint each one is posted to by the http transport.`,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Available entity types:")
			cmd.Println()
			for _, def := range a.registry.Definitions() {
				cmd.Printf("  %-10s %-12s %s\n", def.Type, def.Endpoint, def.Description)
			}
			cmd.Println()
			cmd.Println("Use 'pgedge-datagen generate -e <type> -a <amount>' to generate records.")
		},
	}
}
