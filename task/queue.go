package task

import (
	"errors"
	"fmt"
	"sync"
)

var ErrClosed = errors.New("queue closed")

// Queue is a FIFO of row indices shared by the row generator and the workers.
// The pending rows and the closed flag are guarded by the same mutex so a Pop
// can never observe "open" while a Close is racing a Push.
type Queue struct {
	mutex  sync.Mutex
	ready  *sync.Cond
	rows   []int
	closed bool
	pushed uint
	popped uint
}

func NewQueue() *Queue {
	q := &Queue{}
	q.ready = sync.NewCond(&q.mutex)
	return q
}

// Push appends a row and wakes at most one waiting consumer.
func (q *Queue) Push(row int) error {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.closed {
		return fmt.Errorf("push row %d: %w", row, ErrClosed)
	}
	q.rows = append(q.rows, row)
	q.pushed++
	q.ready.Signal()
	return nil
}

// Pop returns the oldest pending row. It blocks while the queue is empty and
// still open. ok is false only once the queue is both closed and drained, and
// stays false for every later call.
func (q *Queue) Pop() (row int, ok bool) {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	for len(q.rows) == 0 && !q.closed {
		q.ready.Wait()
	}
	if len(q.rows) == 0 {
		return 0, false
	}

	row = q.rows[0]
	q.rows = q.rows[1:]
	q.popped++
	return row, true
}

// Close marks the end of the stream and wakes every waiting consumer.
// Closing an already closed queue does nothing.
func (q *Queue) Close() {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	q.ready.Broadcast()
}

func (q *Queue) Len() int {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return len(q.rows)
}

func (q *Queue) Closed() bool {
	q.mutex.Lock()
	defer q.mutex.Unlock()
	return q.closed
}

func (q *Queue) String() string {
	q.mutex.Lock()
	defer q.mutex.Unlock()

	output := "{Queue "
	output += fmt.Sprintf("Pending: %d ", len(q.rows))
	output += fmt.Sprintf("Pushed: %d ", q.pushed)
	output += fmt.Sprintf("Popped: %d ", q.popped)
	output += fmt.Sprintf("Closed: %t}", q.closed)
	return output
}
