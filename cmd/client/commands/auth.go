package commands

import (
	"fmt"

	"github.com/MKhiriev/go-file-courier/models"
	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <login>",
		Short: "Create an account and its key pair",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, secret, err := readCredentials(cmd, args[0])
			if err != nil {
				return err
			}

			session, err := courier.Register(cmd.Context(), creds, secret)
			if err != nil {
				return err
			}
			defer session.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "registered %s\n", session.Address)
			fmt.Fprintf(cmd.OutOrStdout(), "key fingerprint: %s\n", fingerprintOf(session.PublicKey))
			return nil
		},
	}
}

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <login>",
		Short: "Log in and unlock the private key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			creds, secret, err := readCredentials(cmd, args[0])
			if err != nil {
				return err
			}

			session, err := courier.Login(cmd.Context(), creds, secret)
			if err != nil {
				return err
			}
			defer session.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "logged in as %s\n", session.Address)
			return nil
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved login",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return courier.Logout(cmd.Context())
		},
	}
}

func readCredentials(cmd *cobra.Command, login string) (models.Credentials, string, error) {
	password, err := readLine(cmd, "password")
	if err != nil {
		return models.Credentials{}, "", err
	}
	secret, err := masterSecret(cmd)
	if err != nil {
		return models.Credentials{}, "", err
	}
	return models.Credentials{Login: login, Password: password}, secret, nil
}
