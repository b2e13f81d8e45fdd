package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where EstateFlow finds the property service and how it
waits for image thumbnails.

Settings are stored in ~/.estateflow/config.toml. ESTATEFLOW_API_URL and
--api-url override api.base_url without saving it.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change a setting",
	Long: `Change a single setting. Keys:
  api.base_url               property service root URL
  api.image_base_url         image service root URL (empty = api.base_url)
  api.timeout_seconds        request timeout, 0 for none
  images.thumbnail_attempts  thumbnail polls after an upload
  images.thumbnail_delay_ms  first poll interval, doubled each attempt
  ui.saved_banner_ms         how long the TUI shows the saved banner`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSettingsSet,
}

var settingsWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Run an interactive wizard to configure the service URLs step by step.`,
	RunE:  runSettingsWizard,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsWizardCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[API]")
	cmd.Printf("  Base URL: %s\n", settings.API.BaseURL)
	if settings.API.ImageBaseURL != "" {
		cmd.Printf("  Image URL: %s\n", settings.API.ImageBaseURL)
	} else {
		cmd.Printf("  Image URL: %s (same as base)\n", settings.API.EffectiveImageBaseURL())
	}
	if settings.API.TimeoutSeconds > 0 {
		cmd.Printf("  Timeout: %ds\n", settings.API.TimeoutSeconds)
	} else {
		cmd.Println("  Timeout: none")
	}
	cmd.Println()

	cmd.Println("[Images]")
	cmd.Printf("  Thumbnail attempts: %d\n", settings.Images.ThumbnailAttempts)
	cmd.Printf("  Thumbnail delay: %s\n", settings.Images.ThumbnailDelay)
	cmd.Println()

	cmd.Println("[UI]")
	cmd.Printf("  Saved banner: %s\n", settings.UI.SavedBannerDelay)

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	key, value := args[0], ""
	if len(args) == 2 {
		value = args[1]
	}
	if err := settingsService.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s updated\n", key)
	applySettings()
	return nil
}

func runSettingsWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	reader := bufio.NewReader(cmd.InOrStdin())

	cmd.Println("EstateFlow Setup")
	cmd.Println("================")
	cmd.Println("Press Enter to keep the current value.")
	cmd.Println()

	cmd.Printf("Property service URL [%s]: ", settings.API.BaseURL)
	if input := readLine(reader); input != "" {
		if err := domain.ValidateBaseURL(input); err != nil {
			return err
		}
		settings.API.BaseURL = input
	}

	cmd.Printf("Image service URL, blank for the same [%s]: ", settings.API.ImageBaseURL)
	if input := readLine(reader); input != "" {
		if err := domain.ValidateBaseURL(input); err != nil {
			return err
		}
		settings.API.ImageBaseURL = input
	}

	cmd.Printf("Request timeout in seconds, 0 for none [%d]: ", settings.API.TimeoutSeconds)
	settings.API.TimeoutSeconds = parseNonNegative(readLine(reader), settings.API.TimeoutSeconds)

	cmd.Printf("Thumbnail polls after upload [%d]: ", settings.Images.ThumbnailAttempts)
	settings.Images.ThumbnailAttempts = parseNonNegative(readLine(reader), settings.Images.ThumbnailAttempts)

	ms := int(settings.Images.ThumbnailDelay / time.Millisecond)
	cmd.Printf("First poll delay in ms [%d]: ", ms)
	settings.Images.ThumbnailDelay = time.Duration(parseNonNegative(readLine(reader), ms)) * time.Millisecond

	if err := settingsService.Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	cmd.Println()
	cmd.Printf("Settings saved. %s is now %s\n", services.KeyBaseURL, settings.API.BaseURL)
	applySettings()
	return nil
}

func parseNonNegative(input string, defaultVal int) int {
	if input == "" {
		return defaultVal
	}
	val, err := strconv.Atoi(input)
	if err != nil || val < 0 {
		return defaultVal
	}
	return val
}
