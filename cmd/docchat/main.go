// Command docchat uploads a document to a question answering backend and
// holds a conversation about it from the terminal.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/docchat/internal/adapters/driven/backend/docapi"
	"github.com/custodia-labs/docchat/internal/adapters/driven/config/file"
	"github.com/custodia-labs/docchat/internal/adapters/driven/inspector"
	"github.com/custodia-labs/docchat/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/docchat/internal/adapters/driving/cli"
	"github.com/custodia-labs/docchat/internal/core/ports/driven"
	"github.com/custodia-labs/docchat/internal/core/services"
	"github.com/custodia-labs/docchat/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = ""

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute()
	_ = logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the adapters and services for one run.
func bootstrap(opts cli.Options) (*cli.Services, error) {
	var (
		store   driven.ConfigStore
		watcher driven.ConfigWatcher
	)
	fileStore, err := file.NewConfigStore(opts.ConfigDir)
	if err != nil {
		logger.Warn("Config file unavailable, using defaults: %v", err)
		store = memory.NewConfigStore()
	} else {
		store = fileStore
		watcher = fileStore
	}

	settingsService := services.NewSettingsService(store)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	logger.SetVerbose(opts.Verbose || settings.Logging.Verbose)
	logger.Debug("Config: %s", store.Path())

	backendSettings := settings.Backend
	if opts.BaseURL != "" {
		backendSettings.BaseURL = opts.BaseURL
	}
	if err := backendSettings.Validate(); err != nil {
		return nil, err
	}

	backend := docapi.NewClient(docapi.ConfigFromSettings(backendSettings))
	docs := inspector.New(settings.Documents.AcceptedTypes)
	session := services.NewSession()

	conversation := services.NewConversationService(session, backend)
	conversation.SetRequireDocument(settings.Conversation.RequireDocument)

	logger.Debug("Session %s against %s", session.ID(), backend.BaseURL())

	return &cli.Services{
		Upload:        services.NewUploadService(session, backend, docs),
		Conversation:  conversation,
		Health:        services.NewHealthService(backend),
		Settings:      settingsService,
		ConfigWatcher: watcher,
	}, nil
}
