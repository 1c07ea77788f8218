// Package cli contains the Cobra commands of the esfeed tool.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/kyuff/esfeed"
)

const defaultURL = "http://127.0.0.1:2113"

// NewRoot constructs the root command with the read, subscribe and publish commands.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:          "esfeed",
		Short:        "Read, follow and append to event streams over HTTP",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("url", envOr("ESFEED_URL", defaultURL), "Base URL of the origin (env ESFEED_URL)")
	root.PersistentFlags().String("log-level", envOr("ESFEED_LOG_LEVEL", "info"), "Log level: debug|info|warn|error")
	root.PersistentFlags().String("log-format", envOr("ESFEED_LOG_FORMAT", "text"), "Log format: text|json")

	root.AddCommand(
		newReadCommand(),
		newSubscribeCommand(),
		newPublishCommand(),
	)

	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// newLogger writes to the error output of the command so events on stdout stay parseable.
func newLogger(cmd *cobra.Command) (zerolog.Logger, error) {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")

	parsed, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid --log-level: %w", err)
	}

	var out io.Writer
	switch format {
	case "json":
		out = cmd.ErrOrStderr()
	case "text":
		out = zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.TimeOnly, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("invalid --log-format; use text|json")
	}

	return zerolog.New(out).Level(parsed).With().Timestamp().Logger(), nil
}

func newClient(cmd *cobra.Command, opts ...esfeed.Option) (*esfeed.Client, error) {
	baseURL, _ := cmd.Flags().GetString("url")
	log, err := newLogger(cmd)
	if err != nil {
		return nil, err
	}

	return esfeed.NewClient(baseURL, append([]esfeed.Option{esfeed.WithZerolog(log)}, opts...)...), nil
}

type eventLine struct {
	ID     string          `json:"id,omitempty"`
	Type   string          `json:"type"`
	Number int64           `json:"number"`
	Data   json.RawMessage `json:"data,omitempty"`
}

func writeEvent(enc *json.Encoder, event esfeed.Event) error {
	return enc.Encode(eventLine{
		ID:     event.ID,
		Type:   event.Type,
		Number: event.Number,
		Data:   event.Data,
	})
}
