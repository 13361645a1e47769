package factory

import (
	"time"

	"github.com/mcoot/tictactoe-go/internal/dependencies/mocks"
	"github.com/mcoot/tictactoe-go/internal/services/game"
	"github.com/mcoot/tictactoe-go/internal/storage/memory"
	"github.com/mcoot/tictactoe-go/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Memory     *memory.Storage
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Bot moves only happen when the test advances MockClock past ThinkDelay.
// With an empty MockRandom queue every random pick takes the first option.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, game.DefaultThinkDelay, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Memory:     store,
	}
}

// BotThinks advances the mock clock far enough for a pending bot move to run
func (t *TestApp) BotThinks() {
	t.MockClock.Advance(game.DefaultThinkDelay)
}
