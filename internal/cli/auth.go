package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) newLoginCmd() *cobra.Command {
	var token, email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with an API token or credentials",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			c := a.client()
			if token == "" {
				if email == "" || password == "" {
					return errors.New("either --token or --email and --password are required")
				}
				var err error
				if token, err = c.Login(ctx, email, password); err != nil {
					return err
				}
			}
			ok, err := c.Verify(ctx, token)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New("invalid or expired token")
			}
			if err := a.session.Save(token); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed in.")
			return nil
		},
	}
	cmd.Flags().StringVar(&token, "token", "", "API token")
	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password")
	cmd.MarkFlagsMutuallyExclusive("token", "email")
	return cmd
}

func (a *app) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(*cobra.Command, []string) error {
			if err := a.session.Remove(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Signed out.")
			return nil
		},
	}
}

func (a *app) newPasswdCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "passwd",
		Short: "Change the password of the signed-in account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(password) < 8 {
				return errors.New("--password must be at least 8 characters")
			}
			if err := a.client().ResetPassword(cmd.Context(), password); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Password changed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "new password")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
