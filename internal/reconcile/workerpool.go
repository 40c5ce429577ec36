package reconcile

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

type WorkerPoolI interface {
	Submit(ctx context.Context, task Task, results chan<- Result) error
	Close()
}

// Task is one pending payment to re-check. Resolve reports whether the
// payment came back settled.
type Task struct {
	PaymentNo string
	Resolve   func(ctx context.Context) (bool, error)
}

// Result is the outcome of a single task, delivered on the channel the
// task was submitted with.
type Result struct {
	PaymentNo string
	Settled   bool
	Err       error
}

type boundTask struct {
	ctx     context.Context
	task    Task
	results chan<- Result
}

type WorkerPool struct {
	tasks     chan boundTask
	workers   *errgroup.Group
	closeOnce sync.Once
}

func NewWorkerPool(size int) *WorkerPool {
	wp := &WorkerPool{
		tasks:   make(chan boundTask, size),
		workers: &errgroup.Group{},
	}
	for i := 0; i < size; i++ {
		wp.workers.Go(wp.worker)
	}
	return wp
}

func (wp *WorkerPool) worker() error {
	for bound := range wp.tasks {
		settled, err := bound.task.Resolve(bound.ctx)
		bound.results <- Result{PaymentNo: bound.task.PaymentNo, Settled: settled, Err: err}
	}
	return nil
}

// Submit queues a task; its Result lands on results once a worker has run it.
// Blocks while every worker is busy and the queue is full.
func (wp *WorkerPool) Submit(ctx context.Context, task Task, results chan<- Result) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- boundTask{ctx: ctx, task: task, results: results}:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	wp.closeOnce.Do(func() {
		close(wp.tasks)
	})
	_ = wp.workers.Wait()
}
