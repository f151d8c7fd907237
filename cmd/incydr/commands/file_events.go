package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/spf13/cobra"
)

// NewFileEventsCommand creates the file events command group.
func NewFileEventsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "file-events",
		Aliases: []string{"events", "fe"},
		Short:   "Search file events",
		Long:    "Search file events using the V2 event schema",
	}

	cmd.AddCommand(newFileEventsSearchCommand())

	return cmd
}

type fileEventFilters struct {
	equals       []string
	notEquals    []string
	exists       []string
	doesNotExist []string
	startTime    string
	endTime      string
	riskScoreGT  int
	pageSize     int
	allPages     bool
}

func newFileEventsSearchCommand() *cobra.Command {
	filters := &fileEventFilters{}

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search file events",
		Long: `Search file events with term filters.

Term filters take the form TERM=VALUE, for example:

  incydr file-events search --equals file.category=Document --equals event.action=file-downloaded`,
		RunE: func(cmd *cobra.Command, args []string) error {
			query, err := buildEventQuery(filters)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var events []incydr.FileEventV2

			if filters.allPages {
				events, err = client.FileEvents().IterAll(ctx, query).All()
				if err != nil {
					return fmt.Errorf("failed to search file events: %w", err)
				}
			} else {
				page, err := client.FileEvents().Search(ctx, query)
				if err != nil {
					return fmt.Errorf("failed to search file events: %w", err)
				}

				events = page.FileEvents
			}

			return renderOutput(events, func() error {
				return renderRows(fileEventHeader(), fileEventRows(events))
			})
		},
	}

	cmd.Flags().StringArrayVar(&filters.equals, "equals", nil, "filter where TERM=VALUE (repeatable)")
	cmd.Flags().StringArrayVar(&filters.notEquals, "not-equals", nil, "filter where TERM!=VALUE, written TERM=VALUE (repeatable)")
	cmd.Flags().StringSliceVar(&filters.exists, "exists", nil, "filter where the term is populated")
	cmd.Flags().StringSliceVar(&filters.doesNotExist, "does-not-exist", nil, "filter where the term is not populated")
	cmd.Flags().StringVar(&filters.startTime, "start-time", "", "events on or after this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().StringVar(&filters.endTime, "end-time", "", "events before this time (RFC3339 or YYYY-MM-DD)")
	cmd.Flags().IntVar(&filters.riskScoreGT, "risk-score-above", 0, "events with a risk score above this value")
	cmd.Flags().IntVar(&filters.pageSize, "page-size", 0, "results per page")
	cmd.Flags().BoolVar(&filters.allPages, "all", false, "fetch all pages")

	return cmd
}

func buildEventQuery(filters *fileEventFilters) (*incydr.EventQuery, error) {
	query := incydr.NewEventQuery()

	for _, pair := range filters.equals {
		term, value, err := splitTermFilter(pair)
		if err != nil {
			return nil, err
		}

		query.Equals(term, value)
	}

	for _, pair := range filters.notEquals {
		term, value, err := splitTermFilter(pair)
		if err != nil {
			return nil, err
		}

		query.NotEquals(term, value)
	}

	for _, term := range filters.exists {
		query.Exists(term)
	}

	for _, term := range filters.doesNotExist {
		query.DoesNotExist(term)
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

	if filters.riskScoreGT > 0 {
		query.GreaterThan("risk.score", filters.riskScoreGT)
	}

	if filters.pageSize > 0 {
		query.WithPageSize(filters.pageSize)
	}

	if err := query.Err(); err != nil {
		return nil, err
	}

	return query, nil
}

func splitTermFilter(pair string) (string, string, error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] == '=' {
			if i == 0 || i == len(pair)-1 {
				break
			}

			return pair[:i], pair[i+1:], nil
		}
	}

	return "", "", fmt.Errorf("invalid term filter %q: expected TERM=VALUE", pair)
}

func fileEventHeader() []string {
	return []string{"Event ID", "Timestamp", "Action", "File", "User", "Risk Score"}
}

func fileEventRows(events []incydr.FileEventV2) [][]string {
	rows := make([][]string, 0, len(events))
	for _, event := range events {
		var eventID, action, fileName, userEmail, riskScore string

		if event.Event != nil {
			eventID = event.Event.ID
			action = event.Event.Action
		}

		if event.File != nil {
			fileName = event.File.Name
		}

		if event.User != nil {
			userEmail = event.User.Email
		}

		if event.Risk != nil {
			riskScore = strconv.Itoa(event.Risk.Score)
		}

		rows = append(rows, []string{
			formatValue(eventID),
			formatValue(event.Timestamp),
			formatValue(action),
			formatValue(fileName),
			formatValue(userEmail),
			formatValue(riskScore),
		})
	}

	return rows
}
