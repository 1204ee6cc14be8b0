package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	errColor     = color.New(color.FgRed, color.Bold)
	successColor = color.New(color.FgGreen)
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "archivecrypt",
	Short: "Offline crypto tooling for the records archive",
	Long: `Offline helpers for operating the archive's encryption subsystem:
file checksums, random identifiers, password hashes, salt generation, and
inspection of stored field values. None of these commands touch the database
or require the master key.`,
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		errColor.Fprintf(os.Stderr, "Error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
