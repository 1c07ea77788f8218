package cli

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/kyuff/esfeed"
)

// newSubscribeCommand constructs the `subscribe` command.
func newSubscribeCommand() *cobra.Command {
	subscribeCmd := &cobra.Command{
		Use:   "subscribe STREAM",
		Short: "Print events as they are appended to a stream until interrupted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catchUp, _ := cmd.Flags().GetBool("catch-up")
			interval, _ := cmd.Flags().GetDuration("interval")
			limit, _ := cmd.Flags().GetInt("limit")

			client, err := newClient(cmd, esfeed.WithPollInterval(interval))
			if err != nil {
				return err
			}

			var opts []esfeed.SubscribeOption
			if catchUp {
				opts = append(opts, esfeed.WithCatchUp())
			}

			var (
				sub   = client.Subscribe(cmd.Context(), args[0], opts...)
				enc   = json.NewEncoder(cmd.OutOrStdout())
				count = 0
			)
			defer func() { _ = sub.Close() }()

			for event, err := range sub.All() {
				if err != nil {
					if errors.Is(err, cmd.Context().Err()) {
						return nil
					}
					return err
				}
				if err := writeEvent(enc, event); err != nil {
					return err
				}

				count++
				if limit > 0 && count >= limit {
					return nil
				}
			}

			return nil
		},
	}
	subscribeCmd.Flags().Bool("catch-up", false, "Replay the history of the stream before following it")
	subscribeCmd.Flags().Duration("interval", time.Second, "Wait between polls when caught up")
	subscribeCmd.Flags().Int("limit", 0, "Stop after N events (0 = until interrupted)")
	return subscribeCmd
}
