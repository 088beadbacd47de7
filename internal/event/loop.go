// Package event provides the serial task loop deferred work is posted to.
package event

import "sync"

// Loop executes posted tasks one at a time, in order, on a single
// goroutine. Rectangle reactivation after a deactivating command is posted
// here rather than invoked inline, so it runs on the next loop iteration,
// after the host's own post-command teardown, instead of racing it.
// Posted tasks are fire-and-forget: there is no result to await.
type Loop struct {
	mu     sync.Mutex
	tasks  chan func()
	closed bool
	done   chan struct{}
}

// NewLoop creates and starts a task loop.
func NewLoop() *Loop {
	l := &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	defer close(l.done)
	for task := range l.tasks {
		task()
	}
}

// Post queues a task for the next loop iteration. Tasks posted after Close
// are dropped.
func (l *Loop) Post(task func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.tasks <- task
}

// Drain blocks until every task posted so far has run.
func (l *Loop) Drain() {
	var wg sync.WaitGroup
	wg.Add(1)
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.tasks <- wg.Done
	l.mu.Unlock()
	wg.Wait()
}

// Close stops the loop after running the tasks already queued.
func (l *Loop) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	close(l.tasks)
	l.mu.Unlock()
	<-l.done
}
