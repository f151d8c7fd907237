package commands

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/incydr-io/incydr-client/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// NewLoginCommand creates the login command
func NewLoginCommand() *cobra.Command {
	var (
		apiEndpoint  string
		clientID     string
		clientSecret string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Login to Incydr",
		Long:  "Authenticate with an Incydr API endpoint using API client credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if apiEndpoint == "" {
				apiEndpoint = viper.GetString("api")
			}

			if apiEndpoint == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API endpoint: ")
				apiEndpoint, _ = reader.ReadString('\n')
				apiEndpoint = strings.TrimSpace(apiEndpoint)
			}

			endpoint := normalizeEndpoint(apiEndpoint)
			if endpoint == "" {
				return fmt.Errorf("API endpoint is required")
			}

			if clientID == "" {
				reader := bufio.NewReader(os.Stdin)
				fmt.Print("API client ID: ")
				clientID, _ = reader.ReadString('\n')
				clientID = strings.TrimSpace(clientID)
			}

			if clientID == "" {
				return fmt.Errorf("API client ID is required")
			}

			if clientSecret == "" {
				fmt.Print("API client secret: ")
				byteSecret, err := term.ReadPassword(int(syscall.Stdin))
				if err != nil {
					return fmt.Errorf("failed to read secret: %w", err)
				}
				clientSecret = string(byteSecret)
				fmt.Println()
			}

			if clientSecret == "" {
				return fmt.Errorf("API client secret is required")
			}

			// Verify the credentials by exchanging them for a token.
			manager := auth.NewAPIClientTokenManager(endpoint, clientID, clientSecret)

			token, err := manager.GetToken(context.Background())
			if err != nil {
				return fmt.Errorf("failed to authenticate: %w", err)
			}

			config := loadConfig()
			config.API = endpoint
			config.APIClientID = clientID
			config.APIClientSecret = clientSecret
			config.AccessToken = token

			expiry := manager.TokenExpiry()
			config.TokenExpiresAt = &expiry

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Printf("Successfully logged in to %s\n", endpoint)

			return nil
		},
	}

	cmd.Flags().StringVarP(&apiEndpoint, "api", "a", "", "API endpoint URL")
	cmd.Flags().StringVar(&clientID, "client-id", "", "API client ID")
	cmd.Flags().StringVar(&clientSecret, "client-secret", "", "API client secret")

	return cmd
}

// NewLogoutCommand creates the logout command
func NewLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout from Incydr",
		Long:  "Clear stored credentials and tokens",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()
			config.APIClientSecret = ""
			config.AccessToken = ""
			config.TokenExpiresAt = nil

			if err := saveConfigStruct(config); err != nil {
				return fmt.Errorf("failed to save configuration: %w", err)
			}

			fmt.Println("Successfully logged out")
			return nil
		},
	}
}
