package systems

import (
	"context"
	"sync"

	"github.com/spaghettifunk/math3d/engine/core"
	"github.com/spaghettifunk/math3d/engine/workbook"
)

// JobTask describes one workbook evaluation. Exactly one of OnComplete and
// OnFailure is called, then OnCompletionCallback.
type JobTask struct {
	Workbook             *workbook.Workbook
	OnComplete           func(report *workbook.Report)
	OnFailure            func(err error)
	OnCompletionCallback func()
}

type JobSystem struct {
	ctx        context.Context
	evaluator  *workbook.Evaluator
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

/**
 * @brief Creates a job system and starts its workers. Every job runs with
 * ctx; cancelling it makes pending evaluations fail.
 */
func NewJobSystem(ctx context.Context, evaluator *workbook.Evaluator, numWorkers int, queueSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, core.ErrNoWorkers
	}
	if queueSize < 0 {
		return nil, core.ErrNegativeQueueSize
	}

	js := &JobSystem{
		ctx:        ctx,
		evaluator:  evaluator,
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, queueSize),
	}

	js.start()

	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				js.run(job)
			}
		}()
	}
}

func (js *JobSystem) run(job JobTask) {
	report, err := js.evaluator.Evaluate(js.ctx, job.Workbook)
	if err != nil {
		core.LogError("workbook %s: %s", job.Workbook.Name, err.Error())
		if job.OnFailure != nil {
			job.OnFailure(err)
		}
	} else if job.OnComplete != nil {
		job.OnComplete(report)
	}

	// Call the completion callback if set
	if job.OnCompletionCallback != nil {
		job.OnCompletionCallback()
	}
}

/**
 * @brief Shuts the job system down. Queued jobs still run; Shutdown
 * returns once every worker has exited.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return core.ErrJobSystemShutdown
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

// AddWorkNonBlocking queues the job from a new goroutine and returns immediately.
func (js *JobSystem) AddWorkNonBlocking(jt JobTask) {
	go func() {
		if err := js.Submit(jt); err != nil && jt.OnFailure != nil {
			jt.OnFailure(err)
		}
	}()
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return core.ErrJobSystemShutdown
	}
	js.jobQueue <- jt
	return nil
}

// EvaluateAll runs the workbooks on the pool and waits for all of them.
// Reports and errors are returned in input order; a failed workbook leaves
// a nil report and a non-nil error at its index.
func (js *JobSystem) EvaluateAll(workbooks []*workbook.Workbook) ([]*workbook.Report, []error) {
	reports := make([]*workbook.Report, len(workbooks))
	errs := make([]error, len(workbooks))

	var wg sync.WaitGroup
	for i, wb := range workbooks {
		wg.Add(1)
		err := js.Submit(JobTask{
			Workbook:             wb,
			OnComplete:           func(r *workbook.Report) { reports[i] = r },
			OnFailure:            func(err error) { errs[i] = err },
			OnCompletionCallback: wg.Done,
		})
		if err != nil {
			errs[i] = err
			wg.Done()
		}
	}
	wg.Wait()
	return reports, errs
}
