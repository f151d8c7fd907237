package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/spf13/cobra"
)

// NewAlertsCommand creates the alerts command group.
func NewAlertsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "alerts",
		Aliases: []string{"alert"},
		Short:   "Manage alerts",
		Long:    "Search alerts, fetch their details, update their state, and attach notes",
	}

	cmd.AddCommand(newAlertsSearchCommand())
	cmd.AddCommand(newAlertsDetailsCommand())
	cmd.AddCommand(newAlertsUpdateStateCommand())
	cmd.AddCommand(newAlertsAddNoteCommand())

	return cmd
}

type alertFilters struct {
	states     []string
	severities []string
	actorIDs   []string
	ruleIDs    []string
	startTime  string
	endTime    string
	pageSize   int
	allPages   bool
}

func alertFilterFlags(cmd *cobra.Command, filters *alertFilters) {
	cmd.Flags().StringSliceVar(&filters.states, "states", nil, "filter by state (OPEN, IN_PROGRESS, PENDING, RESOLVED)")
	cmd.Flags().StringSliceVar(&filters.severities, "severities", nil, "filter by severity (LOW, MEDIUM, HIGH, CRITICAL)")
	cmd.Flags().StringSliceVar(&filters.actorIDs, "actor-ids", nil, "filter by actor ID")
	cmd.Flags().StringSliceVar(&filters.ruleIDs, "rule-ids", nil, "filter by rule ID")
	cmd.Flags().StringVar(&filters.startTime, "start-time", "", "alerts created on or after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.endTime, "end-time", "", "alerts created before this time (RFC3339 or YYYY-MM-DD)")
}

func buildAlertQuery(filters *alertFilters) (*incydr.AlertQuery, error) {
	query := incydr.NewAlertQuery()

	if len(filters.states) > 0 {
		query.Equals("State", upperAll(filters.states)...)
	}

	if len(filters.severities) > 0 {
		query.Equals("Severity", upperAll(filters.severities)...)
	}

	if len(filters.actorIDs) > 0 {
		query.Equals("ActorId", filters.actorIDs...)
	}

	if len(filters.ruleIDs) > 0 {
		query.Equals("RuleId", filters.ruleIDs...)
	}

	if filters.startTime != "" || filters.endTime != "" {
		var start, end interface{}

		if filters.startTime != "" {
			start = filters.startTime
		}

		if filters.endTime != "" {
			end = filters.endTime
		}

		query.DateRange(start, end)
	}

	if filters.pageSize > 0 {
		query.WithPageSize(filters.pageSize)
	}

	if err := query.Err(); err != nil {
		return nil, err
	}

	return query, nil
}

func newAlertsSearchCommand() *cobra.Command {
	filters := &alertFilters{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search alerts",
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := buildAlertQuery(filters)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var alerts []incydr.Alert

			if filters.allPages {
				alerts, err = client.Alerts().IterAll(ctx, query).All()
				if err != nil {
					return fmt.Errorf("failed to search alerts: %w", err)
				}
			} else {
				page, err := client.Alerts().Search(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to search alerts: %w", err)
				}

				alerts = page.Alerts
			}

			return renderOutput(alerts, func() error {
				rows := make([][]string, 0, len(alerts))
				for _, alert := range alerts {
					rows = append(rows, []string{
						alert.ID,
						truncate(alert.Name, constants.IndicatorDisplayLength),
						alert.Actor,
						string(alert.Severity),
						string(alert.State),
						formatValue(alert.CreatedAt),
					})
				}

				return renderRows([]string{"Alert ID", "Name", "Actor", "Severity", "State", "Created At"}, rows)
			})
		},
	}

	alertFilterFlags(cmd, filters)
	cmd.Flags().IntVar(&filters.pageSize, "page-size", 0, "results per page")
	cmd.Flags().BoolVar(&filters.allPages, "all", false, "fetch all pages")

	return cmd
}

func newAlertsDetailsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "details ALERT_ID...",
		Short: "Get full alert details",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			details, err := client.Alerts().GetDetails(context.Background(), args...)
			if err != nil {
				return fmt.Errorf("failed to get alert details: %w", err)
			}

			return renderOutput(details, func() error {
				rows := make([][]string, 0, len(details))
				for _, detail := range details {
					note := ""
					if detail.Note != nil {
						note = truncate(detail.Note.Message, constants.NoteDisplayLength)
					}

					rows = append(rows, []string{
						detail.ID,
						truncate(detail.Name, constants.IndicatorDisplayLength),
						string(detail.State),
						formatValue(note),
					})
				}

				return renderRows([]string{"Alert ID", "Name", "State", "Note"}, rows)
			})
		},
	}
}

func newAlertsUpdateStateCommand() *cobra.Command {
	var (
		newState string
		note     string
	)

	cmd := &cobra.Command{
		Use:   "update-state ALERT_ID...",
		Short: "Update alert state",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := parseAlertState(newState)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Alerts().ChangeState(context.Background(), state, note, args...)
			if err != nil {
				return fmt.Errorf("failed to update alert state: %w", err)
			}

			fmt.Printf("Updated %d alert(s) to %s\n", len(args), state)

			return nil
		},
	}

	cmd.Flags().StringVar(&newState, "new-state", "", "state to set (required)")
	cmd.Flags().StringVar(&note, "note", "", "note to attach alongside the state change")
	_ = cmd.MarkFlagRequired("new-state")

	return cmd
}

func newAlertsAddNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-note ALERT_ID NOTE",
		Short: "Attach a note to an alert",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Alerts().AddNote(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add note: %w", err)
			}

			fmt.Printf("Added note to alert %s\n", args[0])

			return nil
		},
	}
}

func parseAlertState(value string) (incydr.AlertState, error) {
	state := incydr.AlertState(strings.ToUpper(value))
	switch state {
	case incydr.AlertStateOpen, incydr.AlertStateInProgress, incydr.AlertStatePending, incydr.AlertStateResolved:
		return state, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidState, value)
	}
}

func upperAll(values []string) []string {
	upper := make([]string, 0, len(values))
	for _, value := range values {
		upper = append(upper, strings.ToUpper(value))
	}

	return upper
}
