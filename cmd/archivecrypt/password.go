package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mohamed20102002/archivecrypt"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Hash a password from stdin with Argon2id",
	Long: `Reads one line from stdin and prints its Argon2id hash in the encoded
form stored in the users table. Intended for seeding accounts or resetting a
locked-out administrator.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reader := bufio.NewReader(cmd.InOrStdin())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("reading password: %w", err)
		}
		password := strings.TrimRight(line, "\r\n")
		if password == "" {
			return fmt.Errorf("password cannot be empty")
		}

		hash, err := archivecrypt.HashPassword(password)
		if err != nil {
			return err
		}
		fmt.Println(hash)
		successColor.Fprintln(os.Stderr, "✓ hashed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashPasswordCmd)
}
