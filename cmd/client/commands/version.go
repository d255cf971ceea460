package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print client and server build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "client: %s (%s, %s)\n", build.Version, build.Date, build.Commit)

			v, err := courier.Version(cmd.Context())
			if err != nil {
				fmt.Fprintf(out, "server: unreachable: %v\n", err)
				return nil
			}
			fmt.Fprintf(out, "server: %s (%s, %s)\n", v.Version, v.Date, v.Commit)
			return nil
		},
	}
}
