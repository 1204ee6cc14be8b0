package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohamed20102002/archivecrypt"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <file>...",
	Short: "Print the streamed SHA-256 checksum of one or more files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args {
			sum, err := archivecrypt.SHA256FileHex(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", sum, path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksumCmd)
}
