package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	dir := t.TempDir()
	questions := filepath.Join(dir, "questions")
	require.NoError(t, os.Mkdir(questions, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(questions, "math.yaml"), []byte(`
- question: "2+2?"
  variants: ["3", "4"]
  correct_answer: 1
`), 0o644))

	return Config{
		Env:                  "test",
		LogLevel:             "error",
		LogFormat:            "text",
		Port:                 0,
		DatabaseFile:         filepath.Join(dir, "cardquest.db"),
		QuestionsDir:         questions,
		BotURL:               "https://t.me/test_bot",
		ShutdownGracePeriod:  time.Second,
		HousekeepingInterval: time.Hour,
	}
}

func TestNewWiresServicesWithoutBot(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	require.Nil(t, app.bot)
	require.NotNil(t, app.router)
	require.Same(t, app.quizService, app.router.QuizService)
	require.Equal(t, "https://t.me/test_bot", app.router.BotURL)

	categories, err := app.quizService.ListCategories(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"math"}, categories)
}

func TestNewFailsOnUnopenableDatabase(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseFile = filepath.Join(t.TempDir(), "missing", "dir", "cardquest.db")

	_, err := New(cfg)
	require.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestOpenStoreAppliesMigrations(t *testing.T) {
	cfg := testConfig(t)

	st, err := OpenStore(cfg)
	require.NoError(t, err)
	defer st.Close()

	exists, err := st.Users().UsernameExists(context.Background(), "nobody")
	require.NoError(t, err)
	require.False(t, exists)
}
