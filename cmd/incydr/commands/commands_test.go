package commands_test

import (
	"testing"

	"github.com/incydr-io/incydr-client/cmd/incydr/commands"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewSessionsCommand()
	assert.Equal(t, "sessions", cmd.Use)
	assert.Equal(t, []string{"session"}, cmd.Aliases)
	assert.Equal(t, "Manage alert sessions", cmd.Short)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "events")
	assert.Contains(t, commandNames, "update-state")
	assert.Contains(t, commandNames, "add-note")
}

func TestSessionsListCommandFlags(t *testing.T) {
	t.Parallel()

	listCmd := findSubcommand(commands.NewSessionsCommand(), "list")
	require.NotNil(t, listCmd)

	for _, flag := range []string{"actor-id", "states", "severities", "risk-indicators", "on-or-after", "before", "has-alerts", "all"} {
		assert.NotNil(t, listCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestSessionsUpdateStateRequiresNewState(t *testing.T) {
	t.Parallel()

	sessionsCmd := commands.NewSessionsCommand()
	updateCmd := findSubcommand(sessionsCmd, "update-state")
	require.NotNil(t, updateCmd)

	sessionsCmd.SetArgs([]string{"update-state", "session-1"})

	err := sessionsCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "new-state")
}

func TestNewAuditCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewAuditCommand()
	assert.Equal(t, "audit", cmd.Use)
	assert.Equal(t, []string{"audit-log"}, cmd.Aliases)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "search")
	assert.Contains(t, commandNames, "count")
	assert.Contains(t, commandNames, "export")
}

func TestAuditExportCommandFlags(t *testing.T) {
	t.Parallel()

	exportCmd := findSubcommand(commands.NewAuditCommand(), "export")
	require.NotNil(t, exportCmd)

	targetFolder := exportCmd.Flags().Lookup("target-folder")
	require.NotNil(t, targetFolder)
	assert.Equal(t, ".", targetFolder.DefValue)
}

func TestNewAlertsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewAlertsCommand()
	assert.Equal(t, "alerts", cmd.Use)
	assert.Equal(t, []string{"alert"}, cmd.Aliases)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "search")
	assert.Contains(t, commandNames, "details")
	assert.Contains(t, commandNames, "update-state")
	assert.Contains(t, commandNames, "add-note")
}

func TestAlertsDetailsRequiresArgs(t *testing.T) {
	t.Parallel()

	alertsCmd := commands.NewAlertsCommand()
	detailsCmd := findSubcommand(alertsCmd, "details")
	require.NotNil(t, detailsCmd)

	alertsCmd.SetArgs([]string{"details"})

	err := alertsCmd.Execute()
	require.Error(t, err)
}

func TestNewFileEventsCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewFileEventsCommand()
	assert.Equal(t, "file-events", cmd.Use)
	assert.Equal(t, []string{"events", "fe"}, cmd.Aliases)

	searchCmd := findSubcommand(cmd, "search")
	require.NotNil(t, searchCmd)

	for _, flag := range []string{"equals", "not-equals", "exists", "does-not-exist", "start-time", "end-time", "risk-score-above", "all"} {
		assert.NotNil(t, searchCmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestNewTrustedActivitiesCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewTrustedActivitiesCommand()
	assert.Equal(t, "trusted-activities", cmd.Use)
	assert.Equal(t, []string{"trust", "ta"}, cmd.Aliases)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 5)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "get")
	assert.Contains(t, commandNames, "create")
	assert.Contains(t, commandNames, "update")
	assert.Contains(t, commandNames, "delete")
}

func TestTrustedActivitiesCreateRequiresTypeAndValue(t *testing.T) {
	t.Parallel()

	trustCmd := commands.NewTrustedActivitiesCommand()
	createCmd := findSubcommand(trustCmd, "create")
	require.NotNil(t, createCmd)

	trustCmd.SetArgs([]string{"create"})

	err := trustCmd.Execute()
	require.Error(t, err)
}

func TestNewForwardCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewForwardCommand()
	assert.Equal(t, "forward", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 2)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "sessions")
	assert.Contains(t, commandNames, "file-events")
}

func TestNewConfigCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewConfigCommand()
	assert.Equal(t, "config", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 4)

	commandNames := make([]string, 0, len(subcommands))
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "show")
	assert.Contains(t, commandNames, "set")
	assert.Contains(t, commandNames, "unset")
	assert.Contains(t, commandNames, "clear")
}

func TestNewVersionCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.Equal(t, "Display version information", cmd.Short)
	assert.Contains(t, cmd.Long, "API endpoint")
}

func TestNewLoginCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLoginCommand()
	assert.Equal(t, "login", cmd.Use)

	for _, flag := range []string{"api", "client-id", "client-secret"} {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag %s", flag)
	}
}

func TestNewLogoutCommand(t *testing.T) {
	t.Parallel()

	cmd := commands.NewLogoutCommand()
	assert.Equal(t, "logout", cmd.Use)
}
