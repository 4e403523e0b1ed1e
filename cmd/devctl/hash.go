package main

import (
	"fmt"

	"go-devconnector-backend/pkg/auth"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var hashCmd = &cobra.Command{
	Use:   "hash <password>...",
	Short: "Print bcrypt hashes for the given passwords",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cost, _ := cmd.Flags().GetInt("cost")
		hasher := auth.NewPasswordHasher(cost)
		for _, password := range args {
			hash, err := hasher.Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
	hashCmd.Flags().Int("cost", bcrypt.DefaultCost, "bcrypt cost")
}
