package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/9910597111/BlindSketch-Game/internal/dependencies/mocks"
	"github.com/9910597111/BlindSketch-Game/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(store, mockClock, mockRandom, time.Hour, logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords loads a small word list for testing
func (t *TestApp) LoadTestWords() error {
	words := []string{
		"apple", "banana", "cherry", "dragon", "elephant", "forest",
		"guitar", "helmet", "island", "jacket", "kettle", "ladder",
		"magnet", "needle", "orange", "pillow", "quartz", "rocket",
		"saddle", "temple", "umbrella", "violin", "window", "yogurt",
	}
	return t.WordsService.LoadWords(words)
}
