package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/relocate/tui-go/internal/api"
	"github.com/relocate/tui-go/internal/config"
	"github.com/relocate/tui-go/internal/credstore"
	"github.com/relocate/tui-go/internal/logging"
	"github.com/relocate/tui-go/internal/navigation"
	"github.com/relocate/tui-go/internal/screens"
	"github.com/relocate/tui-go/internal/session"
	"github.com/relocate/tui-go/internal/tui"
	"github.com/relocate/tui-go/internal/views"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}

	// The terminal belongs to the UI, so logs go to a file
	logger, err := logging.New(logging.FileConfig(cfg.LogLevel, filepath.Join(dataDir, "relocate.log"), cfg.Debug))
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	store, err := credstore.Open(cfg.CredentialBackend, dataDir)
	if err != nil {
		return fmt.Errorf("open credential store: %w", err)
	}
	defer store.Close()

	client := api.New(api.Options{
		BaseURL:   cfg.APIURL,
		Timeout:   cfg.Timeout(),
		RetryMax:  cfg.RetryMax,
		RateLimit: cfg.RateLimit,
		Logger:    logger,
	})
	mgr := session.NewManager(store, client, logger)
	client.UseCredentials(mgr)

	registry := views.Default()
	loader := screens.NewLoader(screens.Deps{
		Source:   client,
		Registry: registry,
		UserID:   cfg.UserID,
	}, logger)

	logger.Info("starting",
		zap.String("api_url", cfg.APIURL),
		zap.String("credential_backend", cfg.CredentialBackend),
	)

	p := tea.NewProgram(
		tui.NewRootModel(tui.Deps{
			Session:  mgr,
			Nav:      navigation.New(registry),
			Screens:  loader,
			Recovery: client,
			Logger:   logger,
			Timeout:  cfg.Timeout(),
			Debug:    cfg.Debug,
		}),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}
