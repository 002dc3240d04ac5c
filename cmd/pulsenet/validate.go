package main

import (
	"github.com/aretw0/pulsenet/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check the network for wiring mistakes",
	Long:  `Crawls the network from the entry component and reports a missing entry, unreachable components and conjunctions without inputs.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cli.ReadInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		return app.Validate(text)
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
