package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohamed20102002/archivecrypt"
)

var saltCmd = &cobra.Command{
	Use:   "salt",
	Short: "Generate a fresh master-key salt (hex)",
	Long: `Generates the 32-byte salt persisted alongside the database on first
setup. The application normally does this itself; the command exists for
provisioning scripts and disaster-recovery runbooks.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		salt, err := archivecrypt.GenerateSalt()
		if err != nil {
			return err
		}
		fmt.Println(hex.EncodeToString(salt))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(saltCmd)
}
