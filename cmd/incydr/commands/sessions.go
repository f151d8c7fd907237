package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/spf13/cobra"
)

// NewSessionsCommand creates the sessions command group.
func NewSessionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sessions",
		Aliases: []string{"session"},
		Short:   "Manage alert sessions",
		Long:    "View alert sessions, update their review state, and attach notes",
	}

	cmd.AddCommand(newSessionsListCommand())
	cmd.AddCommand(newSessionsGetCommand())
	cmd.AddCommand(newSessionsEventsCommand())
	cmd.AddCommand(newSessionsUpdateStateCommand())
	cmd.AddCommand(newSessionsAddNoteCommand())

	return cmd
}

type sessionFilters struct {
	actorID        string
	states         []string
	severities     []string
	riskIndicators []string
	ruleIDs        []string
	watchlistIDs   []string
	onOrAfter      string
	before         string
	hasAlerts      string
	pageSize       int
	allPages       bool
}

func newSessionsListCommand() *cobra.Command {
	filters := &sessionFilters{}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List alert sessions",
		Long:  "List alert sessions with optional filtering",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessionsList(filters)
		},
	}

	cmd.Flags().StringVar(&filters.actorID, "actor-id", "", "filter by actor ID")
	cmd.Flags().StringSliceVar(&filters.states, "states", nil, "filter by state (OPEN, OPEN_NEW_DATA, IN_PROGRESS, CLOSED, CLOSED_TP, CLOSED_FP)")
	cmd.Flags().StringSliceVar(&filters.severities, "severities", nil, "filter by severity (no-risk, low, moderate, high, critical)")
	cmd.Flags().StringSliceVar(&filters.riskIndicators, "risk-indicators", nil, "filter by risk indicator name")
	cmd.Flags().StringSliceVar(&filters.ruleIDs, "rule-ids", nil, "filter by triggering rule ID")
	cmd.Flags().StringSliceVar(&filters.watchlistIDs, "watchlist-ids", nil, "filter by watchlist ID")
	cmd.Flags().StringVar(&filters.onOrAfter, "on-or-after", "", "sessions ending on or after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.before, "before", "", "sessions ending before this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.hasAlerts, "has-alerts", "", "filter by alert presence (true or false)")
	cmd.Flags().IntVar(&filters.pageSize, "page-size", 0, "results per page")
	cmd.Flags().BoolVar(&filters.allPages, "all", false, "fetch all pages")

	return cmd
}

func runSessionsList(filters *sessionFilters) error {
	params, err := buildSessionParams(filters)
	if err != nil {
		return err
	}

	client, err := CreateClient()
	if err != nil {
		return err
	}

	ctx := context.Background()

	var sessions []incydr.Session

	if filters.allPages {
		sessions, err = client.Sessions().IterAll(ctx, params).All()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}
	} else {
		page, err := client.Sessions().GetPage(ctx, params)
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		sessions = page.Items
	}

	return renderOutput(sessions, func() error {
		rows := make([][]string, 0, len(sessions))
		for _, session := range sessions {
			rows = append(rows, []string{
				session.SessionID,
				session.ActorID,
				sessionCurrentState(&session),
				sessionTopSeverity(&session),
				formatEpochMillis(session.EndTime),
				session.ExfiltrationSummary,
			})
		}

		return renderRows([]string{"Session ID", "Actor ID", "State", "Severity", "End Time", "Summary"}, rows)
	})
}

func buildSessionParams(filters *sessionFilters) (*incydr.SessionQueryParams, error) {
	params := incydr.NewSessionQueryParams()

	if filters.actorID != "" {
		params.WithActorID(filters.actorID)
	}

	for _, state := range filters.states {
		parsed, err := parseSessionState(state)
		if err != nil {
			return nil, err
		}

		params.WithStates(parsed)
	}

	for _, severity := range filters.severities {
		parsed, err := parseSessionSeverity(severity)
		if err != nil {
			return nil, err
		}

		params.WithSeverities(parsed)
	}

	params.WithRiskIndicators(filters.riskIndicators...)
	params.WithRuleIDs(filters.ruleIDs...)
	params.WithWatchlistIDs(filters.watchlistIDs...)

	if filters.onOrAfter != "" || filters.before != "" {
		onOrAfter, err := parseTimeFlag(filters.onOrAfter)
		if err != nil {
			return nil, err
		}

		before, err := parseTimeFlag(filters.before)
		if err != nil {
			return nil, err
		}

		params.WithDateRange(onOrAfter, before)
	}

	if filters.hasAlerts != "" {
		hasAlerts, err := strconv.ParseBool(filters.hasAlerts)
		if err != nil {
			return nil, fmt.Errorf("invalid --has-alerts value %q: expected true or false", filters.hasAlerts)
		}

		params.WithHasAlerts(hasAlerts)
	}

	if filters.pageSize > 0 {
		params.PageSize = filters.pageSize
	}

	return params, nil
}

func newSessionsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get SESSION_ID",
		Short: "Get a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			session, err := client.Sessions().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get session: %w", err)
			}

			return renderOutput(session, func() error {
				rows := [][]string{
					{"Session ID", session.SessionID},
					{"Actor ID", session.ActorID},
					{"State", sessionCurrentState(session)},
					{"Severity", sessionTopSeverity(session)},
					{"Begin Time", formatEpochMillis(session.BeginTime)},
					{"End Time", formatEpochMillis(session.EndTime)},
					{"Critical Events", strconv.FormatInt(session.CriticalEvents, 10)},
					{"High Events", strconv.FormatInt(session.HighEvents, 10)},
					{"Moderate Events", strconv.FormatInt(session.ModerateEvents, 10)},
					{"Low Events", strconv.FormatInt(session.LowEvents, 10)},
					{"Summary", formatValue(session.ExfiltrationSummary)},
				}

				for _, note := range session.Notes {
					rows = append(rows, []string{"Note", truncate(note.Content, constants.NoteDisplayLength)})
				}

				return renderRows([]string{"Property", "Value"}, rows)
			})
		},
	}
}

func newSessionsEventsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "events SESSION_ID",
		Short: "List file events attached to a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			page, err := client.Sessions().GetEvents(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get session events: %w", err)
			}

			return renderOutput(page.FileEvents, func() error {
				return renderRows(fileEventHeader(), fileEventRows(page.FileEvents))
			})
		},
	}
}

func newSessionsUpdateStateCommand() *cobra.Command {
	var newState string

	filters := &sessionFilters{}

	cmd := &cobra.Command{
		Use:   "update-state [SESSION_ID...]",
		Short: "Update session state",
		Long: `Update the review state of sessions.

With session ID arguments the given sessions are updated directly. Without
arguments, every session matching the filter flags is updated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := parseSessionState(newState)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			if len(args) > 0 {
				err = client.Sessions().UpdateStateByID(ctx, state, args...)
				if err != nil {
					return fmt.Errorf("failed to update session state: %w", err)
				}

				fmt.Printf("Updated %d session(s) to %s\n", len(args), state)

				return nil
			}

			params, err := buildSessionParams(filters)
			if err != nil {
				return err
			}

			requests, err := client.Sessions().UpdateStateByCriteria(ctx, state, params)
			if err != nil {
				return fmt.Errorf("failed to update session state: %w", err)
			}

			fmt.Printf("Updated matching sessions to %s in %d request(s)\n", state, requests)

			return nil
		},
	}

	cmd.Flags().StringVar(&newState, "new-state", "", "state to set (required)")
	cmd.Flags().StringVar(&filters.actorID, "actor-id", "", "filter by actor ID")
	cmd.Flags().StringSliceVar(&filters.states, "states", nil, "filter by current state")
	cmd.Flags().StringSliceVar(&filters.severities, "severities", nil, "filter by severity")
	cmd.Flags().StringVar(&filters.onOrAfter, "on-or-after", "", "sessions ending on or after this time")
	cmd.Flags().StringVar(&filters.before, "before", "", "sessions ending before this time")
	_ = cmd.MarkFlagRequired("new-state")

	return cmd
}

func newSessionsAddNoteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add-note SESSION_ID NOTE",
		Short: "Attach a note to a session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.Sessions().AddNote(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("failed to add note: %w", err)
			}

			fmt.Printf("Added note to session %s\n", args[0])

			return nil
		},
	}
}

func parseSessionState(value string) (incydr.SessionState, error) {
	state := incydr.SessionState(strings.ToUpper(value))
	switch state {
	case incydr.SessionStateOpen, incydr.SessionStateOpenNewData, incydr.SessionStateInProgress,
		incydr.SessionStateClosed, incydr.SessionStateClosedTP, incydr.SessionStateClosedFP:
		return state, nil
	default:
		return "", fmt.Errorf("%w: %q", constants.ErrInvalidState, value)
	}
}

func parseSessionSeverity(value string) (incydr.SessionSeverity, error) {
	switch strings.ToLower(value) {
	case "no-risk", "0":
		return incydr.SeverityNoRisk, nil
	case "low", "1":
		return incydr.SeverityLow, nil
	case "moderate", "2":
		return incydr.SeverityModerate, nil
	case "high", "3":
		return incydr.SeverityHigh, nil
	case "critical", "4":
		return incydr.SeverityCritical, nil
	default:
		return 0, fmt.Errorf("invalid severity %q: expected no-risk, low, moderate, high, or critical", value)
	}
}

// parseTimeFlag accepts RFC3339 or a bare date. An empty value maps to the
// zero time, which the params layer omits.
func parseTimeFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			return parsed, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q: expected RFC3339 or YYYY-MM-DD", value)
}

func formatEpochMillis(millis int64) string {
	if millis == 0 {
		return constants.NotAvailable
	}

	return time.UnixMilli(millis).UTC().Format(time.RFC3339)
}

// sessionCurrentState returns the most recent state change, or N/A when the
// session has no recorded state history.
func sessionCurrentState(session *incydr.Session) string {
	if len(session.States) == 0 {
		return constants.NotAvailable
	}

	return string(session.States[len(session.States)-1].State)
}

// sessionTopSeverity returns the highest recorded severity score.
func sessionTopSeverity(session *incydr.Session) string {
	top := -1
	for _, score := range session.Scores {
		if score.Severity > top {
			top = score.Severity
		}
	}

	switch incydr.SessionSeverity(top) {
	case incydr.SeverityNoRisk:
		return "NO_RISK"
	case incydr.SeverityLow:
		return "LOW"
	case incydr.SeverityModerate:
		return "MODERATE"
	case incydr.SeverityHigh:
		return "HIGH"
	case incydr.SeverityCritical:
		return "CRITICAL"
	default:
		return constants.NotAvailable
	}
}
