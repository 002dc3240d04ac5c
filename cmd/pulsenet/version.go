package main

import (
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pulsenet",
	Run: func(cmd *cobra.Command, args []string) {
		app.Version()
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
