package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewForwardCommand creates the forward command group.
func NewForwardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forward",
		Short: "Forward events to a message broker",
		Long:  "Stream sessions or file events from the API and publish each one as JSON to a NATS subject",
	}

	cmd.AddCommand(newForwardSessionsCommand())
	cmd.AddCommand(newForwardFileEventsCommand())

	return cmd
}

type forwardOptions struct {
	natsURL string
	subject string
}

func forwardFlags(cmd *cobra.Command, opts *forwardOptions) {
	cmd.Flags().StringVar(&opts.natsURL, "nats-url", "", "NATS server URL (default from config or nats://127.0.0.1:4222)")
	cmd.Flags().StringVar(&opts.subject, "subject", "", "NATS subject to publish to")
}

// connect resolves the broker settings from flags and config, then connects.
func (o *forwardOptions) connect() (*nats.Conn, string, error) {
	subject := o.subject
	if subject == "" {
		subject = viper.GetString("nats_subject")
	}

	if subject == "" {
		return nil, "", constants.ErrNoSubjectConfigured
	}

	natsURL := o.natsURL
	if natsURL == "" {
		natsURL = viper.GetString("nats_url")
	}

	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL, nats.Name("incydr-cli"))
	if err != nil {
		return nil, "", fmt.Errorf("failed to connect to NATS at %s: %w", natsURL, err)
	}

	return conn, subject, nil
}

func newForwardSessionsCommand() *cobra.Command {
	opts := &forwardOptions{}
	filters := &sessionFilters{}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Forward alert sessions",
		Long:  "Publish every session matching the filter flags to the configured subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := buildSessionParams(filters)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			conn, subject, err := opts.connect()
			if err != nil {
				return err
			}
			defer conn.Drain() //nolint:errcheck

			count := 0

			err = client.Sessions().IterAll(context.Background(), params).ForEach(func(session incydr.Session) error {
				if err := publishJSON(conn, subject, session); err != nil {
					return err
				}

				count++

				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to forward sessions: %w", err)
			}

			if err := conn.Flush(); err != nil {
				return fmt.Errorf("failed to flush publishes: %w", err)
			}

			fmt.Printf("Forwarded %d session(s) to %s\n", count, subject)

			return nil
		},
	}

	forwardFlags(cmd, opts)
	cmd.Flags().StringVar(&filters.actorID, "actor-id", "", "filter by actor ID")
	cmd.Flags().StringSliceVar(&filters.states, "states", nil, "filter by state")
	cmd.Flags().StringSliceVar(&filters.severities, "severities", nil, "filter by severity")
	cmd.Flags().StringVar(&filters.onOrAfter, "on-or-after", "", "sessions ending on or after this time")
	cmd.Flags().StringVar(&filters.before, "before", "", "sessions ending before this time")

	return cmd
}

func newForwardFileEventsCommand() *cobra.Command {
	opts := &forwardOptions{}
	filters := &fileEventFilters{}

	cmd := &cobra.Command{
		Use:   "file-events",
		Short: "Forward file events",
		Long:  "Publish every file event matching the filter flags to the configured subject",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := buildEventQuery(filters)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			conn, subject, err := opts.connect()
			if err != nil {
				return err
			}
			defer conn.Drain() //nolint:errcheck

			count := 0

			err = client.FileEvents().IterAll(context.Background(), query).ForEach(func(event incydr.FileEventV2) error {
				if err := publishJSON(conn, subject, event); err != nil {
					return err
				}

				count++

				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to forward file events: %w", err)
			}

			if err := conn.Flush(); err != nil {
				return fmt.Errorf("failed to flush publishes: %w", err)
			}

			fmt.Printf("Forwarded %d event(s) to %s\n", count, subject)

			return nil
		},
	}

	forwardFlags(cmd, opts)
	cmd.Flags().StringArrayVar(&filters.equals, "equals", nil, "filter where TERM=VALUE (repeatable)")
	cmd.Flags().StringVar(&filters.startTime, "start-time", "", "events on or after this time")
	cmd.Flags().StringVar(&filters.endTime, "end-time", "", "events before this time")
	cmd.Flags().IntVar(&filters.riskScoreGT, "risk-score-above", 0, "events with a risk score above this value")

	return cmd
}

func publishJSON(conn *nats.Conn, subject string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish to %s: %w", subject, err)
	}

	return nil
}
