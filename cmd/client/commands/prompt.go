package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MKhiriev/go-file-courier/internal/client"
	"github.com/spf13/cobra"
)

const masterSecretEnv = "COURIER_MASTER_SECRET"

// stdin is shared by every prompt of one run, so lines buffered ahead by
// one read are not lost to the next.
var stdin *bufio.Reader

// readLine prompts on stderr and reads one line from the command's stdin.
func readLine(cmd *cobra.Command, label string) (string, error) {
	fmt.Fprintf(cmd.ErrOrStderr(), "%s: ", label)

	if stdin == nil {
		stdin = bufio.NewReader(cmd.InOrStdin())
	}
	line, err := stdin.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func masterSecret(cmd *cobra.Command) (string, error) {
	if secret := os.Getenv(masterSecretEnv); secret != "" {
		return secret, nil
	}
	return readLine(cmd, "master secret")
}

// resume unlocks the saved login. The caller closes the session.
func resume(cmd *cobra.Command) (*client.Session, error) {
	secret, err := masterSecret(cmd)
	if err != nil {
		return nil, err
	}
	return courier.Resume(cmd.Context(), secret)
}
