package main

import (
	"github.com/aretw0/pulsenet/internal/cli"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Press the button and count pulses",
	Long: `Presses the button --cycles times and prints the low and high pulse counts
and their product. With --session the network resumes from the stored
snapshot and saves its state back when done.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := cli.ReadInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		cycles, _ := cmd.Flags().GetInt("cycles")
		session, _ := cmd.Flags().GetString("session")
		return app.Run(cmd.Context(), text, cycles, session)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntP("cycles", "n", 1000, "Number of button presses")
	runCmd.Flags().StringP("session", "s", "", "Snapshot key to resume from and save to")
}
