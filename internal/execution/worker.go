package execution

import (
	"context"
	"sync"
	"time"
)

// Job is one unit of work; Run reports whether it failed
type Job interface {
	Run(ctx context.Context) (failed bool)
}

// Progress receives pass/fail counts as jobs complete
type Progress interface {
	Update(passed, failed int)
	Finish()
}

// Summary is the outcome of executing a batch of jobs
type Summary struct {
	Total    int
	Passed   int
	Failed   int
	Skipped  int // Jobs not started because the context was cancelled
	Workers  int
	Duration time.Duration
}

// WorkerPool runs jobs on a fixed number of workers
type WorkerPool struct {
	workers   int
	scheduler Scheduler
	progress  Progress
}

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(workers int, scheduler Scheduler) *WorkerPool {
	if workers <= 0 {
		workers = 1
	}
	if scheduler == nil {
		scheduler = NewInterleavedScheduler()
	}
	return &WorkerPool{workers: workers, scheduler: scheduler}
}

// SetProgress sets the progress reporter for the worker pool
func (wp *WorkerPool) SetProgress(progress Progress) {
	wp.progress = progress
}

type completion struct {
	index  int
	ran    bool
	failed bool
}

// Execute runs every job and calls onDone(i) for each job in index order,
// whatever order the workers finish in. onDone runs on the calling goroutine.
// With a single worker jobs run strictly one after another.
func (wp *WorkerPool) Execute(ctx context.Context, jobs []Job, onDone func(i int)) Summary {
	summary := Summary{Total: len(jobs), Workers: wp.workers}
	if len(jobs) == 0 {
		return summary
	}

	startTime := time.Now()
	done := make(chan completion, len(jobs))

	var wg sync.WaitGroup
	for _, assigned := range wp.scheduler.Schedule(len(jobs), wp.workers) {
		wg.Add(1)
		go func(indexes []int) {
			defer wg.Done()
			for _, i := range indexes {
				if ctx.Err() != nil {
					done <- completion{index: i}
					continue
				}
				failed := jobs[i].Run(ctx)
				done <- completion{index: i, ran: true, failed: failed}
			}
		}(assigned)
	}
	go func() {
		wg.Wait()
		close(done)
	}()

	finished := make([]bool, len(jobs))
	next := 0
	for c := range done {
		finished[c.index] = true
		switch {
		case !c.ran:
			summary.Skipped++
		case c.failed:
			summary.Failed++
		default:
			summary.Passed++
		}
		if wp.progress != nil {
			wp.progress.Update(summary.Passed, summary.Failed)
		}

		for next < len(jobs) && finished[next] {
			if onDone != nil {
				onDone(next)
			}
			next++
		}
	}

	if wp.progress != nil {
		wp.progress.Finish()
	}
	summary.Duration = time.Since(startTime)
	return summary
}
