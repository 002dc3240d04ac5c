package main

import (
	"github.com/aretw0/pulsenet/internal/cli"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph [file]",
	Short: "Export the network as a Mermaid diagram",
	Long: `Outputs a Mermaid flowchart (graph TD) of the network. With --session, flip-flops
that are on in the stored snapshot are highlighted. --watch or --sink marks the
components the period command would watch.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cli.ReadInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		var opts cli.GraphOptions
		opts.Session, _ = cmd.Flags().GetString("session")
		opts.Watch, _ = cmd.Flags().GetStringSlice("watch")
		opts.Sink, _ = cmd.Flags().GetString("sink")
		return app.Graph(cmd.Context(), text, opts)
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringP("session", "s", "", "Snapshot key to overlay")
	graphCmd.Flags().StringSlice("watch", nil, "Components to mark as watched, comma separated")
	graphCmd.Flags().String("sink", "", "Sink whose gate inputs are marked as watched")
	graphCmd.MarkFlagsMutuallyExclusive("watch", "sink")
}
