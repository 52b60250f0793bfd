package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/ports/driving"
)

// version is set at build time via -ldflags "-X .../cli.version=...".
var version = "dev"

// Global flag values.
var (
	configDir  string
	baseURL    string
	verboseLog bool
)

// Options carries the global flags to the bootstrap function.
type Options struct {
	// ConfigDir overrides the configuration directory (default ~/.docchat).
	ConfigDir string

	// BaseURL overrides backend.base_url for this run.
	BaseURL string

	// Verbose enables debug logging regardless of logging.verbose.
	Verbose bool
}

// Services holds the driving ports used by the commands.
type Services struct {
	Upload       driving.UploadController
	Conversation driving.ConversationController
	Health       driving.HealthService
	Settings     driving.SettingsService

	// ConfigWatcher is optional; when set, long-running commands apply
	// configuration edits without a restart.
	ConfigWatcher driven.ConfigWatcher
}

// Bootstrap builds the services from the parsed global flags.
type Bootstrap func(opts Options) (*Services, error)

var bootstrap Bootstrap

// Package-level ports, populated by bootstrap or directly by tests.
var (
	uploadController       driving.UploadController
	conversationController driving.ConversationController
	healthService          driving.HealthService
	settingsService        driving.SettingsService
	configWatcher          driven.ConfigWatcher
)

var errServicesNotConfigured = errors.New("services not configured")

var rootCmd = &cobra.Command{
	Use:   "docchat",
	Short: "Chat with your documents from the terminal",
	Long: `docchat uploads a document to a question answering backend and lets you
hold a conversation about it.

Run without arguments to start the interactive terminal UI, or use the
upload, ask and chat commands from scripts.`,
	SilenceUsage:      true,
	PersistentPreRunE: runBootstrap,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTUI(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.docchat)")
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "backend base URL (overrides backend.base_url)")
	rootCmd.PersistentFlags().BoolVarP(&verboseLog, "verbose", "v", false, "enable debug logging")
}

// SetBootstrap registers the function that builds services after flag parsing.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	uploadController = s.Upload
	conversationController = s.Conversation
	healthService = s.Health
	settingsService = s.Settings
	configWatcher = s.ConfigWatcher
}

// SetVersion overrides the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func runBootstrap(_ *cobra.Command, _ []string) error {
	if bootstrap == nil {
		return nil
	}
	services, err := bootstrap(Options{
		ConfigDir: configDir,
		BaseURL:   baseURL,
		Verbose:   verboseLog,
	})
	if err != nil {
		return fmt.Errorf("initialise: %w", err)
	}
	SetServices(services)
	return nil
}
