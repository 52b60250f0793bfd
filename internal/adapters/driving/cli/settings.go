package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change docchat settings.

Settings are stored in config.toml inside the configuration directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Change a single setting. Values are validated before they are saved.

Keys:
  backend.base_url               Backend address (http or https)
  backend.timeout_seconds        Request timeout in seconds
  backend.requests_per_second    Request throttle (0 = unlimited)
  conversation.require_document  Reject questions until an upload succeeds
  documents.accepted_types       Comma-separated MIME types
  logging.verbose                Enable debug logging
  logging.file                   Log file used by the terminal UI`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	// Values such as -1 must reach validation as arguments, not flags.
	settingsSetCmd.Flags().SetInterspersed(false)

	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errServicesNotConfigured
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	values := settingValues(settings)
	width := 0
	for _, key := range settingsService.Keys() {
		width = max(width, len(key))
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	for _, key := range settingsService.Keys() {
		cmd.Printf("  %-*s  %s\n", width, key, values[key])
	}

	if err := settingsService.Validate(); err != nil {
		cmd.Println()
		cmd.Printf("Warning: %v\n", err)
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errServicesNotConfigured
	}

	key, value := args[0], args[1]
	if err := settingsService.Set(key, value); err != nil {
		return err
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	cmd.Printf("%s = %s\n", key, settingValues(settings)[key])
	return nil
}

// settingValues renders every setting as display text keyed by config key.
func settingValues(s *domain.AppSettings) map[string]string {
	logFile := s.Logging.File
	if logFile == "" {
		logFile = "(stderr)"
	}
	rate := "unlimited"
	if s.Backend.RequestsPerSecond > 0 {
		rate = strconv.FormatFloat(s.Backend.RequestsPerSecond, 'f', -1, 64)
	}
	types := strings.Join(s.Documents.AcceptedTypes, ", ")
	if types == "" {
		types = "(any)"
	}

	return map[string]string{
		"backend.base_url":              s.Backend.BaseURL,
		"backend.timeout_seconds":       strconv.Itoa(s.Backend.TimeoutSeconds),
		"backend.requests_per_second":   rate,
		"conversation.require_document": strconv.FormatBool(s.Conversation.RequireDocument),
		"documents.accepted_types":      types,
		"logging.verbose":               strconv.FormatBool(s.Logging.Verbose),
		"logging.file":                  logFile,
	}
}
