package worker

import (
	"context"
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/strafekit/strafe/oerror"
	"go.uber.org/atomic"
)

// Task is a unit of CPU intensive work, such as running a scenario.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Result is the outcome of a Task.
type Result struct {
	Name string
	Err  error
}

type job struct {
	index int
	task  Task
}

// Pool runs tasks on a fixed number of goroutines. A task that panics is reported to sentry and
// its panic is returned as the task's error, so a single broken task does not take the others down.
type Pool struct {
	ctx   context.Context
	log   *logrus.Logger
	queue chan job
	wg    sync.WaitGroup

	mu      sync.Mutex
	results []Result

	submitted atomic.Int64
	completed atomic.Int64
	failed    atomic.Int64
	closed    atomic.Bool
}

// NewPool starts a pool with the given number of workers. A non-positive count uses one worker per
// CPU. Tasks receive ctx, and tasks still queued once it is cancelled fail without running.
func NewPool(ctx context.Context, workers int, log *logrus.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.New()
		log.Out = io.Discard
	}
	p := &Pool{
		ctx:   ctx,
		log:   log,
		queue: make(chan job, workers),
	}
	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit queues a task, blocking while every worker is busy and the queue is full.
func (p *Pool) Submit(t Task) error {
	if p.closed.Load() {
		return oerror.New("worker pool is closed")
	}
	if t.Run == nil {
		return oerror.New("task %q has nothing to run", t.Name)
	}

	p.mu.Lock()
	index := len(p.results)
	p.results = append(p.results, Result{Name: t.Name})
	p.mu.Unlock()
	p.submitted.Inc()

	select {
	case p.queue <- job{index: index, task: t}:
		return nil
	case <-p.ctx.Done():
		p.finish(index, oerror.New("task %q not started: %v", t.Name, p.ctx.Err()))
		return p.ctx.Err()
	}
}

// Close stops accepting tasks, waits for the queued ones to finish and returns every result in
// submission order. It must not be called concurrently with Submit.
func (p *Pool) Close() []Result {
	if p.closed.CompareAndSwap(false, true) {
		close(p.queue)
	}
	p.wg.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Result(nil), p.results...)
}

// Submitted returns the number of tasks submitted so far.
func (p *Pool) Submitted() int64 {
	return p.submitted.Load()
}

// Completed returns the number of tasks that have finished, successfully or not.
func (p *Pool) Completed() int64 {
	return p.completed.Load()
}

// Failed returns the number of tasks that returned an error or panicked.
func (p *Pool) Failed() int64 {
	return p.failed.Load()
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for j := range p.queue {
		if err := p.ctx.Err(); err != nil {
			p.finish(j.index, oerror.New("task %q not started: %v", j.task.Name, err))
			continue
		}
		p.finish(j.index, p.run(j.task))
	}
}

func (p *Pool) run(t Task) (err error) {
	defer func() {
		if v := recover(); v != nil {
			p.log.Errorf("task %s panicked: %v", t.Name, v)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("task", t.Name)
			})
			err = oerror.New("task %q panicked: %v", t.Name, v)
			hub.Recover(oerror.New("%v", v))
			hub.Flush(time.Second * 5)
		}
	}()

	start := time.Now()
	err = t.Run(p.ctx)
	p.log.WithFields(logrus.Fields{"task": t.Name, "took": time.Since(start)}).Debug("task finished")
	return err
}

func (p *Pool) finish(index int, err error) {
	p.mu.Lock()
	p.results[index].Err = err
	p.mu.Unlock()

	p.completed.Inc()
	if err != nil {
		p.failed.Inc()
	}
}
