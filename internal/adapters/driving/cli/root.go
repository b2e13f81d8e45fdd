// Package cli provides the estateflow command line, built on Cobra.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/ports/driving"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/services"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// version is set at build time.
var version = "dev"

// Global flags.
var (
	verbose bool
	apiURL  string
)

// Services wired in by main.
var (
	propertyService driving.PropertyService
	imageService    driving.ImageService
	settingsService driving.SettingsService
	retarget        func(*domain.AppSettings)
	watchConfig     func(ctx context.Context, onChange func()) error
)

var rootCmd = &cobra.Command{
	Use:   "estateflow",
	Short: "Turn broker messages into structured property listings",
	Long: `EstateFlow extracts property details from free-text broker messages,
lets you review and save them, and browse the saved listings.

It talks to the EstateFlow property service (default http://localhost:8000).
Run "estateflow sandbox" to start a local stand-in service.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: configure,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print diagnostic logs to stderr")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "property service URL for this run (overrides config)")
}

// Config holds the services the commands drive.
type Config struct {
	Properties driving.PropertyService
	Images     driving.ImageService
	Settings   driving.SettingsService

	// Retarget points the HTTP clients at changed settings.
	Retarget func(*domain.AppSettings)

	// WatchConfig blocks until ctx ends, calling onChange after the config
	// file is edited. Long-running commands use it to follow edits.
	WatchConfig func(ctx context.Context, onChange func()) error
}

// Configure installs the services used by the commands.
func Configure(cfg Config) {
	propertyService = cfg.Properties
	imageService = cfg.Images
	settingsService = cfg.Settings
	retarget = cfg.Retarget
	watchConfig = cfg.WatchConfig
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// configure applies the global flags before any command runs.
func configure(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if apiURL == "" || settingsService == nil {
		return nil
	}
	if err := settingsService.Override(services.KeyBaseURL, apiURL); err != nil {
		return fmt.Errorf("--api-url: %w", err)
	}
	applySettings()
	return nil
}

// applySettings pushes the current settings to the HTTP clients.
func applySettings() {
	if settingsService == nil || retarget == nil {
		return
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("read settings: %v", err)
		return
	}
	retarget(settings)
}

// followConfig retargets the clients whenever the config file changes,
// until ctx ends.
func followConfig(ctx context.Context) {
	if watchConfig == nil {
		return
	}
	go func() {
		if err := watchConfig(ctx, applySettings); err != nil {
			logger.Warn("config watch stopped: %v", err)
		}
	}()
}

func requireProperties() error {
	if propertyService == nil {
		return errors.New("property service not configured")
	}
	return nil
}

func requireImages() error {
	if imageService == nil {
		return errors.New("image service not configured")
	}
	return nil
}

// userError presents err through the user-facing message taxonomy while
// keeping it available to errors.Is.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg }
func (e *userError) Unwrap() error { return e.err }

func friendly(err error, fallback string) error {
	return &userError{msg: domain.UserMessage(err, fallback), err: err}
}
