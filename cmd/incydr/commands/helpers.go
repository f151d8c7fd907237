package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/incydr-io/incydr-client/internal/auth"
	"github.com/incydr-io/incydr-client/internal/client"
	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/incydr-io/incydr-client/pkg/incydr"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// CreateClient creates an Incydr client from the effective CLI configuration.
// Client credentials take precedence so a cached token can be refreshed; a
// bare access token is used as-is.
func CreateClient() (incydr.Client, error) {
	endpoint := normalizeEndpoint(viper.GetString("api"))
	if endpoint == "" {
		return nil, constants.ErrNoAPIConfigured
	}

	config := &incydr.Config{
		APIEndpoint: endpoint,
		Debug:       viper.GetBool("debug"),
		UserAgent:   "incydr-cli",
	}

	clientID := viper.GetString("api_client_id")
	clientSecret := viper.GetString("api_client_secret")
	accessToken := viper.GetString("access_token")

	if clientID != "" && clientSecret != "" {
		manager := auth.NewAPIClientTokenManager(endpoint, clientID, clientSecret)
		tokenManager := auth.NewConfigTokenManager(manager, NewConfigPersister(), accessToken, loadTokenExpiry())

		incydrClient, err := client.NewWithTokenManager(config, tokenManager)
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}

		return incydrClient, nil
	}

	if accessToken != "" {
		config.AccessToken = accessToken

		incydrClient, err := client.NewWithTokenManager(config, auth.NewStaticTokenManager(accessToken))
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}

		return incydrClient, nil
	}

	return nil, constants.ErrNotAuthenticated
}

// normalizeEndpoint trims a trailing slash and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	if endpoint == "" {
		return ""
	}

	endpoint = strings.TrimSuffix(endpoint, "/")
	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}

// renderOutput writes value as JSON or YAML per the output setting, or calls
// renderTable for the default table format.
func renderOutput(value interface{}, renderTable func() error) error {
	output := viper.GetString("output")
	switch output {
	case constants.FormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding JSON output: %w", err)
		}

		return nil
	case constants.FormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(value)
		if err != nil {
			return fmt.Errorf("encoding YAML output: %w", err)
		}

		return nil
	case constants.FormatCSV, constants.FormatTable, "":
		return renderTable()
	default:
		return fmt.Errorf("%w: %s", constants.ErrInvalidOutput, output)
	}
}

// renderRows renders header + rows as a table, or as CSV when the output
// setting asks for it.
func renderRows(header []string, rows [][]string) error {
	if viper.GetString("output") == constants.FormatCSV {
		writer := csv.NewWriter(os.Stdout)

		err := writer.Write(header)
		if err != nil {
			return fmt.Errorf("writing CSV header: %w", err)
		}

		err = writer.WriteAll(rows)
		if err != nil {
			return fmt.Errorf("writing CSV rows: %w", err)
		}

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	headerCells := make([]interface{}, 0, len(header))
	for _, cell := range header {
		headerCells = append(headerCells, cell)
	}

	table.Header(headerCells...)

	for _, row := range rows {
		_ = table.Append(row)
	}

	err := table.Render()
	if err != nil {
		return fmt.Errorf("failed to render table: %w", err)
	}

	return nil
}

// formatValue substitutes a placeholder for empty values in table cells.
func formatValue(value string) string {
	if value == "" {
		return constants.NotAvailable
	}

	return value
}

// truncate shortens a string for table display.
func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}

	if max <= 3 {
		return value[:max]
	}

	return value[:max-3] + "..."
}
