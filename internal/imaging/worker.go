package imaging

import "sync"

// Job hands a protocol to the worker for resizing. The sender gives up the
// protocol when the job is accepted.
type Job struct {
	Version  uint64
	Protocol Protocol
	Area     Rect
	Mode     ResizeMode
}

// Result returns a resized protocol to its owner.
type Result struct {
	Version  uint64
	Protocol Protocol
}

// DefaultQueueSize bounds the number of jobs waiting for the worker.
const DefaultQueueSize = 4

// Worker resizes protocols one at a time, in submission order.
type Worker struct {
	jobs    chan Job
	deliver func(Result)
	done    chan struct{}
	once    sync.Once
}

// NewWorker starts the worker goroutine. deliver is called from the worker
// for every finished job and may block.
func NewWorker(queue int, deliver func(Result)) *Worker {
	if queue <= 0 {
		queue = DefaultQueueSize
	}
	w := &Worker{
		jobs:    make(chan Job, queue),
		deliver: deliver,
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *Worker) run() {
	defer close(w.done)
	for job := range w.jobs {
		job.Protocol.ResizeEncode(job.Area, job.Mode)
		w.deliver(Result{Version: job.Version, Protocol: job.Protocol})
	}
}

// Submit queues job without blocking. It returns false when the queue is full,
// in which case the caller still owns job.Protocol.
func (w *Worker) Submit(job Job) bool {
	select {
	case w.jobs <- job:
		return true
	default:
		return false
	}
}

// Close stops accepting jobs and waits for queued ones to finish.
func (w *Worker) Close() {
	w.once.Do(func() {
		close(w.jobs)
	})
	<-w.done
}
