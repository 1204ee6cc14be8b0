package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohamed20102002/archivecrypt"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <value>",
	Short: "Classify a stored field value without decrypting it",
	Long: `Reports whether a value taken from the database is an encrypted field
of the current format version or legacy plaintext. Nothing is decrypted, so
no key is required and the value is never altered.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		value := args[0]
		if value == "" {
			fmt.Println("empty value (canonical empty encoding)")
			return nil
		}
		if archivecrypt.IsEncryptedField(value) {
			successColor.Printf("encrypted (version %s)\n", strings.SplitN(value, ":", 2)[0])
			return nil
		}
		if parts := strings.Split(value, ":"); len(parts) == 4 {
			fmt.Printf("encrypted grammar with unsupported version %q\n", parts[0])
			return nil
		}
		fmt.Println("legacy plaintext")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
