package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/spaghettifunk/math3d/engine/assets"
	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/systems"
	"github.com/spaghettifunk/math3d/engine/workbook"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has shut down and cannot be reused
	EngineStageShutdown
)

var ErrWrongStage = errors.New("math3d: engine is not in the right stage")

type Engine struct {
	mu           sync.Mutex
	currentStage Stage
	running      int
	settings     Settings
	evaluator    *workbook.Evaluator
	jobSystem    *systems.JobSystem
	cancel       context.CancelFunc
}

func New(settings Settings) (*Engine, error) {
	if err := settings.Validate(); err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	return &Engine{
		currentStage: EngineStageUninitialized,
		settings:     settings,
		evaluator:    workbook.NewEvaluator(settings.Tolerance),
	}, nil
}

func (e *Engine) Stage() Stage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentStage
}

func (e *Engine) Settings() Settings {
	return e.settings
}

// Initialize applies the log level and starts the job system. ctx bounds
// every evaluation the engine runs.
func (e *Engine) Initialize(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentStage != EngineStageUninitialized {
		return fmt.Errorf("Initialize: stage %d: %w", e.currentStage, ErrWrongStage)
	}
	e.currentStage = EngineStageInitializing

	if err := core.SetLogLevel(e.settings.LogLevel); err != nil {
		e.currentStage = EngineStageUninitialized
		return err
	}
	if err := core.MetricsInitialize(); err != nil {
		e.currentStage = EngineStageUninitialized
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	js, err := systems.NewJobSystem(ctx, e.evaluator, e.settings.Workers, e.settings.QueueSize)
	if err != nil {
		cancel()
		e.currentStage = EngineStageUninitialized
		return err
	}
	e.jobSystem = js
	e.cancel = cancel
	e.currentStage = EngineStageInitialized

	core.LogDebug("engine initialized with %d workers", e.settings.Workers)
	return nil
}

// Evaluate loads and evaluates the workbooks at paths concurrently. Reports
// come back in input order; workbooks that could not be loaded or evaluated
// leave a nil entry and contribute to the joined error.
func (e *Engine) Evaluate(paths []string) ([]*workbook.Report, error) {
	if err := e.enterRunning(); err != nil {
		return nil, err
	}
	defer e.leaveRunning()

	return e.evaluate(paths)
}

func (e *Engine) evaluate(paths []string) ([]*workbook.Report, error) {
	reports := make([]*workbook.Report, len(paths))
	var errs []error

	var loaded []*workbook.Workbook
	var positions []int
	for i, path := range paths {
		wb, err := workbook.Load(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		loaded = append(loaded, wb)
		positions = append(positions, i)
	}

	evaluated, evalErrs := e.jobSystem.EvaluateAll(loaded)
	for j, i := range positions {
		if evalErrs[j] != nil {
			errs = append(errs, fmt.Errorf("%s: %w", paths[i], evalErrs[j]))
			continue
		}
		reports[i] = evaluated[j]
		core.LogInfo(evaluated[j].Summary())
	}

	runs, passed, failed := core.MetricsSteps()
	core.LogDebug("metrics: %d runs, %d steps passed, %d failed, %.3fms average", runs, passed, failed, core.MetricsRunTime())
	return reports, errors.Join(errs...)
}

/**
 * @brief Evaluates every workbook under dir, then re-evaluates each one
 * that is created or modified until ctx is done. onReport is called from
 * the watching goroutine for every report.
 */
func (e *Engine) Watch(ctx context.Context, dir string, onReport func(*workbook.Report)) error {
	if err := e.enterRunning(); err != nil {
		return err
	}
	defer e.leaveRunning()

	watcher, err := assets.NewWorkbookWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Initialize(dir); err != nil {
		return err
	}
	core.LogInfo("watching %s (%d workbooks)", dir, len(watcher.Workbooks()))

	run := func(paths []string) {
		reports, err := e.evaluate(paths)
		if err != nil {
			core.LogWarn(err.Error())
		}
		for _, r := range reports {
			if r != nil && onReport != nil {
				onReport(r)
			}
		}
	}
	run(watcher.Workbooks())

	errCh := watcher.Errors()
	for {
		select {
		case <-ctx.Done():
			return nil
		case path, ok := <-watcher.Changes():
			if !ok {
				return core.ErrWatcherClosed
			}
			run([]string{path})
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			core.LogWarn("watcher: %s", err.Error())
		}
	}
}

func (e *Engine) enterRunning() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	switch e.currentStage {
	case EngineStageInitialized, EngineStageRunning:
		e.currentStage = EngineStageRunning
		e.running++
		return nil
	default:
		return fmt.Errorf("run: stage %d: %w", e.currentStage, ErrWrongStage)
	}
}

func (e *Engine) leaveRunning() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running--
	if e.running == 0 && e.currentStage == EngineStageRunning {
		e.currentStage = EngineStageInitialized
	}
}

// Shutdown cancels pending evaluations and stops the job system.
func (e *Engine) Shutdown() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.currentStage == EngineStageShutdown || e.currentStage == EngineStageUninitialized {
		return fmt.Errorf("Shutdown: stage %d: %w", e.currentStage, ErrWrongStage)
	}
	e.currentStage = EngineStageShuttingDown

	if e.cancel != nil {
		e.cancel()
	}
	var err error
	if e.jobSystem != nil {
		err = e.jobSystem.Shutdown()
	}
	e.currentStage = EngineStageShutdown
	return err
}
