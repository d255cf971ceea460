package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/MKhiriev/go-file-courier/internal/client"
	"github.com/MKhiriev/go-file-courier/models"
	"github.com/spf13/cobra"
)

func sendCmd() *cobra.Command {
	var subject string

	cmd := &cobra.Command{
		Use:   "send <address> <file>",
		Short: "Encrypt a file for a recipient and upload it",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()

			info, err := f.Stat()
			if err != nil {
				return err
			}

			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			transfer, err := courier.Send(cmd.Context(), session, client.SendRequest{
				Recipient: args[0],
				Filename:  filepath.Base(args[1]),
				Subject:   subject,
				Size:      info.Size(),
				Body:      f,
			})
			if errors.Is(err, client.ErrRecipientKeyChanged) {
				fmt.Fprintln(cmd.ErrOrStderr(), "verify the new fingerprint with the recipient, then run: courier keys pin", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", transfer.ID, transfer.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "message shown to the recipient")
	return cmd
}

func receiveCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "receive <transfer-id>",
		Short: "Accept, download and decrypt a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			dir := "."
			if output != "" {
				dir = filepath.Dir(output)
			}
			tmp, err := os.CreateTemp(dir, ".courier-*")
			if err != nil {
				return err
			}
			defer os.Remove(tmp.Name())

			transfer, err := courier.Receive(cmd.Context(), session, args[0], tmp)
			if closeErr := tmp.Close(); err == nil {
				err = closeErr
			}
			if err != nil {
				return err
			}

			target := output
			if target == "" {
				target = filepath.Base(transfer.Filename)
			}
			if err = os.Rename(tmp.Name(), target); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes) from %s\n", target, transfer.Size, transfer.Sender)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default: the sender's file name)")
	return cmd
}

func listCmd() *cobra.Command {
	var box string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List incoming or outgoing transfers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			transfers, err := courier.List(cmd.Context(), session, models.Mailbox(box))
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tFROM\tTO\tFILE\tSIZE\tSUBJECT")
			for _, t := range transfers {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\t%s\n", t.ID, t.Status, t.Sender, t.Receiver, t.Filename, t.Size, t.Subject)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&box, "box", string(models.Inbox), "inbox or outbox")
	return cmd
}

func refuseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refuse <transfer-id>",
		Short: "Decline a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			return courier.Refuse(cmd.Context(), session, args[0])
		},
	}
}

func deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <transfer-id>",
		Short: "Withdraw a transfer you sent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := resume(cmd)
			if err != nil {
				return err
			}
			defer session.Close()

			return courier.Delete(cmd.Context(), session, args[0])
		},
	}
}
