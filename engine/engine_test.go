package engine_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/spaghettifunk/math3d/engine"
	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/workbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T) *engine.Engine {
	t.Helper()
	settings := engine.DefaultSettings()
	settings.Workers = 2
	e, err := engine.New(settings)
	require.NoError(t, err)
	require.NoError(t, e.Initialize(context.Background()))
	return e
}

func TestLoadSettings(t *testing.T) {
	settings, err := engine.LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultSettings(), settings)

	path := filepath.Join(t.TempDir(), "math3d.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"debug\"\nworkers = 3\ntolerance = 0.01\n"), 0o644))
	settings, err = engine.LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.LogLevel)
	assert.Equal(t, 3, settings.Workers)
	assert.Equal(t, 0.01, settings.Tolerance)
	assert.Equal(t, engine.DefaultSettings().QueueSize, settings.QueueSize)

	require.NoError(t, os.WriteFile(path, []byte("workers = 0\n"), 0o644))
	_, err = engine.LoadSettings(path)
	require.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("workers = \n"), 0o644))
	_, err = engine.LoadSettings(path)
	require.Error(t, err)
}

func TestEngine_Lifecycle(t *testing.T) {
	e, err := engine.New(engine.DefaultSettings())
	require.NoError(t, err)
	assert.Equal(t, engine.EngineStageUninitialized, e.Stage())

	_, err = e.Evaluate(nil)
	require.ErrorIs(t, err, engine.ErrWrongStage)
	require.ErrorIs(t, e.Shutdown(), engine.ErrWrongStage)

	require.NoError(t, e.Initialize(context.Background()))
	assert.Equal(t, engine.EngineStageInitialized, e.Stage())
	require.ErrorIs(t, e.Initialize(context.Background()), engine.ErrWrongStage)

	require.NoError(t, e.Shutdown())
	assert.Equal(t, engine.EngineStageShutdown, e.Stage())
	_, err = e.Evaluate(nil)
	require.ErrorIs(t, err, engine.ErrWrongStage)
}

func TestEngine_BadSettings(t *testing.T) {
	settings := engine.DefaultSettings()
	settings.QueueSize = -1
	_, err := engine.New(settings)
	require.Error(t, err)

	settings = engine.DefaultSettings()
	settings.LogLevel = "chatty"
	e, err := engine.New(settings)
	require.NoError(t, err)
	require.Error(t, e.Initialize(context.Background()))
	assert.Equal(t, engine.EngineStageUninitialized, e.Stage())
}

func TestEngine_EvaluateTestbed(t *testing.T) {
	e := newEngine(t)
	defer e.Shutdown()

	paths, err := filepath.Glob(filepath.Join("..", "testbed", "*.toml"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	paths = append(paths, filepath.Join(t.TempDir(), "missing.toml"))

	reports, err := e.Evaluate(paths)
	require.ErrorIs(t, err, os.ErrNotExist)
	require.Len(t, reports, len(paths))
	for i, r := range reports[:len(reports)-1] {
		require.NotNil(t, r, paths[i])
		assert.True(t, r.OK(), r.Summary())
	}
	assert.Nil(t, reports[len(reports)-1])
	assert.Equal(t, engine.EngineStageInitialized, e.Stage())
}

func TestEngine_Watch(t *testing.T) {
	e := newEngine(t)
	defer e.Shutdown()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "first.toml"), []byte("name = \"first\"\n[[steps]]\nop = \"identity\"\nsize = 2\n"), 0o644))

	var mu sync.Mutex
	seen := map[string]int{}
	onReport := func(r *workbook.Report) {
		mu.Lock()
		defer mu.Unlock()
		seen[r.Workbook]++
	}
	count := func(name string) int {
		mu.Lock()
		defer mu.Unlock()
		return seen[name]
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Watch(ctx, dir, onReport) }()

	require.Eventually(t, func() bool { return count("first") == 1 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "second.toml"), []byte("name = \"second\"\n"), 0o644))
	require.Eventually(t, func() bool { return count("second") >= 1 }, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, engine.EngineStageRunning, e.Stage())

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, engine.EngineStageInitialized, e.Stage())

	runs, _, _ := core.MetricsSteps()
	assert.GreaterOrEqual(t, runs, int64(2))
}
