package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kyuff/esfeed"
)

// newPublishCommand constructs the `publish` command.
func newPublishCommand() *cobra.Command {
	publishCmd := &cobra.Command{
		Use:   "publish STREAM",
		Short: "Append one event to a stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventType, _ := cmd.Flags().GetString("type")
			data, _ := cmd.Flags().GetString("data")
			id, _ := cmd.Flags().GetString("id")

			if eventType == "" {
				return fmt.Errorf("--type is required")
			}
			if !json.Valid([]byte(data)) {
				return fmt.Errorf("--data must be valid JSON")
			}

			client, err := newClient(cmd)
			if err != nil {
				return err
			}

			var opts []esfeed.PublishOption
			if id != "" {
				opts = append(opts, esfeed.WithEventID(id))
			}

			err = client.PublishEvent(cmd.Context(), args[0], eventType, json.RawMessage(data), opts...)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "status:", "OK")
			return nil
		},
	}
	publishCmd.Flags().String("type", "", "Event type")
	publishCmd.Flags().String("data", "{}", "Event data as JSON")
	publishCmd.Flags().String("id", "", "Event id (generated when empty)")
	return publishCmd
}
