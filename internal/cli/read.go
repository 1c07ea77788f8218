package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/kyuff/esfeed"
)

// newReadCommand constructs the `read` command.
func newReadCommand() *cobra.Command {
	readCmd := &cobra.Command{
		Use:   "read STREAM",
		Short: "Print all events of a stream as JSON lines, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			for event, err := range client.Read(cmd.Context(), args[0], esfeed.WithLimit(limit)) {
				if err != nil {
					return err
				}
				if err := writeEvent(enc, event); err != nil {
					return err
				}
			}

			return nil
		},
	}
	readCmd.Flags().Int("limit", 0, "Stop after N events (0 = all)")
	return readCmd
}
