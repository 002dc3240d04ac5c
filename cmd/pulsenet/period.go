package main

import (
	"github.com/aretw0/pulsenet/internal/cli"
	"github.com/spf13/cobra"
)

var periodCmd = &cobra.Command{
	Use:   "period [file]",
	Short: "Find the press on which components first emit high",
	Long: `Prints, for each watched component, the first button press on which it emits a
high pulse, then the least common multiple of those periods. With --sink the
watched components are the inputs of the conjunction feeding that sink.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cli.ReadInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		watch, _ := cmd.Flags().GetStringSlice("watch")
		sink, _ := cmd.Flags().GetString("sink")
		return app.Period(cmd.Context(), text, watch, sink)
	},
}

func init() {
	rootCmd.AddCommand(periodCmd)

	periodCmd.Flags().StringSlice("watch", nil, "Components to watch, comma separated")
	periodCmd.Flags().String("sink", "", "Sink whose gate inputs are watched")
	periodCmd.MarkFlagsMutuallyExclusive("watch", "sink")
	periodCmd.MarkFlagsOneRequired("watch", "sink")
}
