package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/templui/studytrack/internal/auth"
	"github.com/templui/studytrack/internal/credential"
)

func LoginCmd() *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store an API token in the OS keyring",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, flush := loadConfig()
			defer flush()

			tokens, err := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
			if err != nil {
				return err
			}

			token, err := tokens.Generate(userID)
			if err != nil {
				return fmt.Errorf("issue token: %w", err)
			}

			creds, err := credential.Open()
			if err != nil {
				return err
			}
			err = creds.SetToken(token)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (token valid for %s)\n", userID, cfg.JWTExpiry)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id to sign in as")
	cmd.MarkFlagRequired("user")

	return cmd
}

func LogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored API token",
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, err := credential.Open()
			if err != nil {
				return err
			}
			err = creds.ClearToken()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
			return nil
		},
	}
}
