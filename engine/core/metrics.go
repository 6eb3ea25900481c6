package core

import (
	"sync"
	"time"

	"github.com/spaghettifunk/math3d/engine/containers"
)

const AVG_COUNT = 30

// MetricsState accumulates counters across workbook runs. The evaluation
// time average covers the last AVG_COUNT runs.
type MetricsState struct {
	mu sync.Mutex

	MStimes     *containers.RingQueue[float64]
	MSavg       float64
	Runs        int64
	StepsPassed int64
	StepsFailed int64
}

var onceMetrics sync.Once
var metricsState *MetricsState = nil

func MetricsInitialize() error {
	onceMetrics.Do(func() {
		metricsState = &MetricsState{
			MStimes: containers.NewRingQueue[float64](AVG_COUNT),
		}
	})
	return nil
}

// MetricsRecordRun adds one evaluated workbook to the counters.
func MetricsRecordRun(elapsed time.Duration, passed, failed int) {
	_ = MetricsInitialize()
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()

	run_ms := float64(elapsed) / float64(time.Millisecond)
	metricsState.MStimes.Push(run_ms)

	sum := 0.0
	for _, ms := range metricsState.MStimes.Values() {
		sum += ms
	}
	metricsState.MSavg = sum / float64(metricsState.MStimes.Len())

	metricsState.Runs++
	metricsState.StepsPassed += int64(passed)
	metricsState.StepsFailed += int64(failed)
}

// MetricsRunTime returns the average evaluation time in milliseconds.
func MetricsRunTime() float64 {
	_ = MetricsInitialize()
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.MSavg
}

// MetricsSteps returns the number of runs and the passed and failed steps.
func MetricsSteps() (runs, passed, failed int64) {
	_ = MetricsInitialize()
	metricsState.mu.Lock()
	defer metricsState.mu.Unlock()
	return metricsState.Runs, metricsState.StepsPassed, metricsState.StepsFailed
}
