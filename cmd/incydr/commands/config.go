package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/incydr-io/incydr-client/internal/constants"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration.
type Config struct {
	API             string     `json:"api,omitempty"               yaml:"api,omitempty"`
	APIClientID     string     `json:"api_client_id,omitempty"     yaml:"api_client_id,omitempty"`
	APIClientSecret string     `json:"api_client_secret,omitempty" yaml:"api_client_secret,omitempty"`
	AccessToken     string     `json:"access_token,omitempty"      yaml:"access_token,omitempty"`
	TokenExpiresAt  *time.Time `json:"token_expires_at,omitempty"  yaml:"token_expires_at,omitempty"`

	// Global settings
	Output  string `json:"output,omitempty"   yaml:"output,omitempty"`
	NoColor bool   `json:"no_color,omitempty" yaml:"no_color,omitempty"`

	// Event forwarding
	NATSURL     string `json:"nats_url,omitempty"     yaml:"nats_url,omitempty"`
	NATSSubject string `json:"nats_subject,omitempty" yaml:"nats_subject,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Manage Incydr CLI configuration including the API endpoint and settings",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())
	cmd.AddCommand(newConfigClearCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration with secrets masked",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			masked := *config

			// Secrets never leave the config file in the clear.
			if masked.APIClientSecret != "" {
				masked.APIClientSecret = constants.MaskedSecret
			}

			if masked.AccessToken != "" {
				masked.AccessToken = constants.MaskedSecret
			}

			return renderOutput(&masked, func() error {
				rows := [][]string{
					{"api", formatValue(masked.API)},
					{"api_client_id", formatValue(masked.APIClientID)},
					{"api_client_secret", formatValue(masked.APIClientSecret)},
					{"access_token", formatValue(masked.AccessToken)},
					{"output", formatValue(masked.Output)},
					{"no_color", fmt.Sprintf("%t", masked.NoColor)},
				}

				if masked.NATSURL != "" {
					rows = append(rows, []string{"nats_url", masked.NATSURL})
				}

				if masked.NATSSubject != "" {
					rows = append(rows, []string{"nats_subject", masked.NATSSubject})
				}

				return renderRows([]string{"Key", "Value"}, rows)
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]
			value := args[1]

			config := loadConfig()

			handler, exists := configKeyHandlers()[key]
			if !exists {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			handler(config, value)

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Set %s\n", key)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			handler, exists := configKeyHandlers()[key]
			if !exists {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			handler(config, "")

			err := saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			fmt.Fprintf(os.Stdout, "Unset %s\n", key)

			return nil
		},
	}
}

func newConfigClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear configuration",
		Long:  "Remove the configuration file entirely",
		RunE: func(cmd *cobra.Command, args []string) error {
			configFile := configFilePath()

			err := os.Remove(configFile)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("failed to remove config file: %w", err)
			}

			fmt.Fprintln(os.Stdout, "Cleared configuration")

			return nil
		},
	}
}

// configKeyHandlers maps settable keys to their setters. Token fields are
// managed by login/logout, not config set.
func configKeyHandlers() map[string]func(*Config, string) {
	return map[string]func(*Config, string){
		"api":           func(c *Config, v string) { c.API = v },
		"api_client_id": func(c *Config, v string) { c.APIClientID = v },
		"output":        func(c *Config, v string) { c.Output = v },
		"no_color":      func(c *Config, v string) { c.NoColor = v == constants.BooleanTrue || v == "1" },
		"nats_url":      func(c *Config, v string) { c.NATSURL = v },
		"nats_subject":  func(c *Config, v string) { c.NATSSubject = v },
	}
}

func loadConfig() *Config {
	config := &Config{
		API:             viper.GetString("api"),
		APIClientID:     viper.GetString("api_client_id"),
		APIClientSecret: viper.GetString("api_client_secret"),
		AccessToken:     viper.GetString("access_token"),
		Output:          viper.GetString("output"),
		NoColor:         viper.GetBool("no_color"),
		NATSURL:         viper.GetString("nats_url"),
		NATSSubject:     viper.GetString("nats_subject"),
	}

	if expiry := loadTokenExpiry(); !expiry.IsZero() {
		config.TokenExpiresAt = &expiry
	}

	return config
}

// loadTokenExpiry reads the persisted token expiry, if any.
func loadTokenExpiry() time.Time {
	raw := viper.GetString("token_expires_at")
	if raw == "" {
		return time.Time{}
	}

	expiry, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return expiry
}

func configFilePath() string {
	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		home, _ := os.UserHomeDir()
		configFile = filepath.Join(home, ".incydr", "config.yml")
	}

	return configFile
}

func saveConfigStruct(config *Config) error {
	configFile := configFilePath()

	configDir := filepath.Dir(configFile)

	err := os.MkdirAll(configDir, constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// Keep the running process in sync with what was just written.
	viper.Set("api", config.API)
	viper.Set("api_client_id", config.APIClientID)
	viper.Set("api_client_secret", config.APIClientSecret)
	viper.Set("access_token", config.AccessToken)

	if config.TokenExpiresAt != nil {
		viper.Set("token_expires_at", config.TokenExpiresAt.Format(time.RFC3339))
	} else {
		viper.Set("token_expires_at", "")
	}

	return nil
}
