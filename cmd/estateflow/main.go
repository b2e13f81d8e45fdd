// Command estateflow turns broker messages into structured property
// listings through the EstateFlow property service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/config/file"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/imageapi"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/propertyapi"
	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driving/cli"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/services"
	"github.com/Prerna-lily/EstateFlow-AI/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// envAPIURL overrides api.base_url for the process without saving it.
const envAPIURL = "ESTATEFLOW_API_URL"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is normal; the environment is used as-is.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Warn("loading .env: %v", err)
	}

	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)
	if url := os.Getenv(envAPIURL); url != "" {
		if err := settingsService.Override(services.KeyBaseURL, url); err != nil {
			return fmt.Errorf("%s: %w", envAPIURL, err)
		}
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("reading settings: %w", err)
	}

	gateway := propertyapi.NewGateway(propertyapi.Config{
		BaseURL: settings.API.BaseURL,
		Timeout: settings.API.Timeout(),
	})
	channel := imageapi.NewChannel(propertyapi.Config{
		BaseURL: settings.API.EffectiveImageBaseURL(),
		Timeout: settings.API.Timeout(),
	})

	imageService := services.NewImageService(channel, services.ThumbnailPolicy{
		Attempts: settings.Images.ThumbnailAttempts,
		Delay:    settings.Images.ThumbnailDelay,
	})
	propertyService := services.NewPropertyService(gateway, imageService)

	cli.SetVersion(version)
	cli.Configure(cli.Config{
		Properties: propertyService,
		Images:     imageService,
		Settings:   settingsService,
		Retarget: func(s *domain.AppSettings) {
			gateway.SetBaseURL(s.API.BaseURL)
			channel.SetBaseURL(s.API.EffectiveImageBaseURL())
			logger.Info("property service at %s", s.API.BaseURL)
		},
		WatchConfig: func(ctx context.Context, onChange func()) error {
			return configStore.Watch(ctx, file.DefaultDebounce, onChange)
		},
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.Execute(ctx)
}
