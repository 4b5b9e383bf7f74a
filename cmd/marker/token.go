package main

import (
	"fmt"

	"github.com/markerhq/marker/internal/auth"
	"github.com/markerhq/marker/internal/config"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var owner string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a Bearer token for an owner id",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			authenticator := auth.NewAuthenticator(cfg.Auth.Secret, cfg.Auth.TokenTTL)
			token, err := authenticator.Issue(owner)
			if err != nil {
				return err
			}

			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "owner id the token authenticates as")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}
