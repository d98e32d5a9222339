package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stoneerp",
	Short: "Stone products ERP: master data and product spreadsheet import",
}

// Execute adds registered commands and runs the root command. Exits 1 on error.
func Execute() {
	Apply()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
