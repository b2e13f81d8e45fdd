package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Prerna-lily/EstateFlow-AI/internal/adapters/driven/storage/memory"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/domain"
	"github.com/Prerna-lily/EstateFlow-AI/internal/core/services"
)

// fixture wires the commands to the real services over an in-memory store.
type fixture struct {
	store     *memory.PropertyStore
	settings  *services.SettingsService
	retargets []*domain.AppSettings
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{store: memory.NewPropertyStore()}
	images := services.NewImageService(f.store.Images(), services.ThumbnailPolicy{Attempts: 2, Delay: time.Millisecond})
	f.settings = services.NewSettingsService(memory.NewConfigStore())

	Configure(Config{
		Properties: services.NewPropertyService(f.store, images),
		Images:     images,
		Settings:   f.settings,
		Retarget: func(s *domain.AppSettings) {
			f.retargets = append(f.retargets, s)
		},
	})
	t.Cleanup(func() {
		Configure(Config{})
		resetFlags()
	})
	return f
}

// resetFlags restores the package-level flag variables between runs.
func resetFlags() {
	verbose, apiURL = false, ""
	extractJSON = false
	addSets, addImage = nil, ""
	listCriteria, listJSON = domain.FilterCriteria{}, false
	updateSets, deleteYes = nil, false
	statsJSON, imageDeleteYes = false, false
}

// run executes the root command with args and stdin, returning the
// combined output.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetIn(nil)
		resetFlags()
	}()

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}
