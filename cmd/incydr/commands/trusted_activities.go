package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/spf13/cobra"
)

// NewTrustedActivitiesCommand creates the trusted activities command group.
func NewTrustedActivitiesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trusted-activities",
		Aliases: []string{"trust", "ta"},
		Short:   "Manage trusted activity exclusions",
		Long:    "Create, view, update, and delete trusted activity exclusions",
	}

	cmd.AddCommand(newTrustedActivitiesListCommand())
	cmd.AddCommand(newTrustedActivitiesGetCommand())
	cmd.AddCommand(newTrustedActivitiesCreateCommand())
	cmd.AddCommand(newTrustedActivitiesUpdateCommand())
	cmd.AddCommand(newTrustedActivitiesDeleteCommand())

	return cmd
}

func newTrustedActivitiesListCommand() *cobra.Command {
	var (
		activityType string
		pageSize     int
		allPages     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trusted activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := incydr.NewTrustedActivitiesQueryParams()

			if activityType != "" {
				parsed, err := parseTrustedActivityType(activityType)
				if err != nil {
					return err
				}

				params.WithActivityType(parsed)
			}

			if pageSize > 0 {
				params.PageSize = pageSize
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			var activities []incydr.TrustedActivity

			if allPages {
				activities, err = client.TrustedActivities().IterAll(ctx, params).All()
				if err != nil {
					return fmt.Errorf("failed to list trusted activities: %w", err)
				}
			} else {
				page, err := client.TrustedActivities().GetPage(ctx, params)
				if err != nil {
					return fmt.Errorf("failed to list trusted activities: %w", err)
				}

				activities = page.TrustedActivities
			}

			return renderOutput(activities, func() error {
				rows := make([][]string, 0, len(activities))
				for _, activity := range activities {
					rows = append(rows, trustedActivityRow(&activity))
				}

				return renderRows([]string{"Activity ID", "Type", "Value", "Description"}, rows)
			})
		},
	}

	cmd.Flags().StringVar(&activityType, "type", "", "filter by activity type (DOMAIN, URL_PATH, SLACK, ACCOUNT_NAME, GIT_REPOSITORY_URI)")
	cmd.Flags().IntVar(&pageSize, "page-size", 0, "results per page")
	cmd.Flags().BoolVar(&allPages, "all", false, "fetch all pages")

	return cmd
}

func newTrustedActivitiesGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ACTIVITY_ID",
		Short: "Get a trusted activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			activity, err := client.TrustedActivities().Get(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to get trusted activity: %w", err)
			}

			return renderOutput(activity, func() error {
				rows := [][]string{
					{"Activity ID", activity.ActivityID},
					{"Type", string(activity.Type)},
					{"Value", activity.Value},
					{"Description", formatValue(activity.Description)},
					{"Updated By", formatValue(activity.UpdatedByPrincipalName)},
					{"Updated At", formatEpochMillis(activity.UpdateTime)},
				}

				return renderRows([]string{"Property", "Value"}, rows)
			})
		},
	}
}

func newTrustedActivitiesCreateCommand() *cobra.Command {
	var (
		activityType string
		value        string
		description  string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a trusted activity",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := parseTrustedActivityType(activityType)
			if err != nil {
				return err
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			activity, err := client.TrustedActivities().Create(context.Background(), &incydr.TrustedActivity{
				Type:        parsed,
				Value:       value,
				Description: description,
			})
			if err != nil {
				return fmt.Errorf("failed to create trusted activity: %w", err)
			}

			fmt.Printf("Created trusted activity %s\n", activity.ActivityID)

			return nil
		},
	}

	cmd.Flags().StringVar(&activityType, "type", "", "activity type (required)")
	cmd.Flags().StringVar(&value, "value", "", "value to trust, e.g. a domain name (required)")
	cmd.Flags().StringVar(&description, "description", "", "description of the exclusion")
	_ = cmd.MarkFlagRequired("type")
	_ = cmd.MarkFlagRequired("value")

	return cmd
}

func newTrustedActivitiesUpdateCommand() *cobra.Command {
	var (
		value       string
		description string
	)

	cmd := &cobra.Command{
		Use:   "update ACTIVITY_ID",
		Short: "Update a trusted activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := CreateClient()
			if err != nil {
				return err
			}

			ctx := context.Background()

			// Fetch first so unset flags keep their current values.
			activity, err := client.TrustedActivities().Get(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to get trusted activity: %w", err)
			}

			if value != "" {
				activity.Value = value
			}

			if cmd.Flags().Changed("description") {
				activity.Description = description
			}

			updated, err := client.TrustedActivities().Update(ctx, activity)
			if err != nil {
				return fmt.Errorf("failed to update trusted activity: %w", err)
			}

			fmt.Printf("Updated trusted activity %s\n", updated.ActivityID)

			return nil
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.Flags().StringVar(&description, "description", "", "new description")

	return cmd
}

func newTrustedActivitiesDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ACTIVITY_ID",
		Short: "Delete a trusted activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				fmt.Printf("Really delete trusted activity %s? (y/N): ", args[0])

				var response string
				_, _ = fmt.Scanln(&response)

				if response != "y" && response != "Y" {
					fmt.Println("Cancelled")
					return nil
				}
			}

			client, err := CreateClient()
			if err != nil {
				return err
			}

			err = client.TrustedActivities().Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("failed to delete trusted activity: %w", err)
			}

			fmt.Printf("Deleted trusted activity %s\n", args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")

	return cmd
}

func parseTrustedActivityType(value string) (incydr.TrustedActivityType, error) {
	activityType := incydr.TrustedActivityType(strings.ToUpper(value))
	switch activityType {
	case incydr.TrustedActivityDomain, incydr.TrustedActivityURLPath, incydr.TrustedActivitySlack,
		incydr.TrustedActivityAccountName, incydr.TrustedActivityGitURI:
		return activityType, nil
	default:
		return "", fmt.Errorf("invalid activity type %q: expected DOMAIN, URL_PATH, SLACK, ACCOUNT_NAME, or GIT_REPOSITORY_URI", value)
	}
}

func trustedActivityRow(activity *incydr.TrustedActivity) []string {
	return []string{
		activity.ActivityID,
		string(activity.Type),
		activity.Value,
		formatValue(truncate(activity.Description, constants.NoteDisplayLength)),
	}
}
