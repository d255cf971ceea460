package commands

import (
	"fmt"

	"github.com/MKhiriev/go-file-courier/internal/crypto"
	"github.com/spf13/cobra"
)

func keysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "Manage your key pair and pinned recipient keys",
	}
	cmd.AddCommand(keysRedoCmd(), keysFingerprintCmd(), keysPinCmd())
	return cmd
}

func keysRedoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo",
		Short: "Replace your key pair; every outstanding transfer expires",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			newSecret, err := readLine(cmd, "new master secret")
			if err != nil {
				return err
			}

			replaced, err := courier.RedoKeys(cmd.Context(), session, newSecret)
			if err != nil {
				return err
			}
			defer replaced.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "new key fingerprint: %s\n", fingerprintOf(replaced.PublicKey))
			return nil
		},
	}
}

func keysFingerprintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fingerprint [address]",
		Short: "Show your fingerprint or the current and pinned key of an address",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			if len(args) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", session.Address, fingerprintOf(session.PublicKey))
				return nil
			}

			key, pin, err := courier.Fingerprint(cmd.Context(), session, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "current: %s\n", key.Fingerprint)
			switch {
			case pin == nil:
				fmt.Fprintln(cmd.OutOrStdout(), "pinned:  (none)")
			case pin.Fingerprint != key.Fingerprint:
				fmt.Fprintf(cmd.OutOrStdout(), "pinned:  %s (CHANGED, pinned %s)\n", pin.Fingerprint, pin.PinnedAt.Format("2006-01-02"))
			default:
				fmt.Fprintf(cmd.OutOrStdout(), "pinned:  %s\n", pin.Fingerprint)
			}
			return nil
		},
	}
}

func keysPinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pin <address>",
		Short: "Trust the key an address has now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			pin, err := courier.Pin(cmd.Context(), session, args[0])
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "pinned %s %s\n", pin.Address, pin.Fingerprint)
			return nil
		},
	}
}

func fingerprintOf(publicKey []byte) string {
	return crypto.Fingerprint(publicKey)
}
