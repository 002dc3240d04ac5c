package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/pulsenet/internal/cli"
	"github.com/aretw0/pulsenet/internal/config"
	"github.com/aretw0/pulsenet/internal/logging"
	"github.com/spf13/cobra"
)

var app *cli.App

var rootCmd = &cobra.Command{
	Use:   "pulsenet",
	Short: "pulsenet simulates networks of pulse-relaying components",
	Long: `pulsenet reads a wiring file (one component per line, '%' for flip-flops,
'&' for conjunctions) and presses its button: counting pulses, finding
periods and drawing the network.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		app = a
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "YAML configuration file")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("entry", "", "Component that receives the button pulse")
	flags.Int("max-pulses", 0, "Pulse budget of a single button press")
	flags.Int("max-triggers", 0, "Press budget when searching for a period")
	flags.Int("workers", 0, "Parallel period searches (0 means one per CPU)")
	flags.String("store", "", "Snapshot store: memory, file or redis")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after a run")
}

// flagKeys maps flags to configuration keys.
var flagKeys = map[string]string{
	"log-level":    "log_level",
	"entry":        "entry",
	"max-pulses":   "max_pulses",
	"max-triggers": "max_triggers",
	"workers":      "workers",
	"store":        "store.kind",
	"metrics-file": "metrics_file",
}

func newApp(cmd *cobra.Command) (*cli.App, error) {
	overrides := map[string]any{}
	for name, key := range flagKeys {
		f := cmd.Flags().Lookup(name)
		if f != nil && f.Changed {
			overrides[key] = f.Value.String()
		}
	}

	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, overrides)
	if err != nil {
		return nil, err
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := logging.New(os.Stderr, level)

	return cli.NewApp(cfg, logger, cli.NewStyler(cmd.OutOrStdout()))
}
