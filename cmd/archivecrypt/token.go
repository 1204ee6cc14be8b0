package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mohamed20102002/archivecrypt"
)

var tokenBytes int

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a CSPRNG-backed hex token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := archivecrypt.GenerateSecureToken(tokenBytes)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

var shortIDLength int

var shortIDCmd = &cobra.Command{
	Use:   "shortid",
	Short: "Generate a random display ID (not a secret)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := archivecrypt.GenerateShortID(shortIDLength)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	},
}

func init() {
	tokenCmd.Flags().IntVarP(&tokenBytes, "bytes", "n", 32, "number of random bytes")
	shortIDCmd.Flags().IntVarP(&shortIDLength, "length", "l", 8, "ID length in characters")
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(shortIDCmd)
}
