package worker

import (
	"sync"
	"time"

	"mandelbrot/misc"
	"mandelbrot/raster"
	"mandelbrot/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// Pool is a fixed set of interchangeable workers draining one queue into one
// buffer. No row is reserved for a particular worker.
type Pool struct {
	logger  bslogger.Logger
	started bool
	wait    sync.WaitGroup
	workers []*Worker
}

func NewPool(settings Settings, renderer RowRenderer, queue *task.Queue, buffer *raster.Buffer, logSettings misc.LogSettings) (*Pool, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	pool := &Pool{
		logger:  logSettings.NewLogger("Pool"),
		workers: make([]*Worker, settings.Count),
	}
	for i := range pool.workers {
		pool.workers[i] = NewWorker(i+1, renderer, queue, buffer, logSettings)
	}
	return pool, nil
}

// Start launches every worker. Calling Start more than once has no effect.
func (p *Pool) Start() {
	if p.started {
		return
	}
	p.started = true

	p.logger.Infof("Starting %d workers", len(p.workers))
	for _, w := range p.workers {
		p.wait.Go(w.processTasks)
	}
}

// Wait blocks until every worker has seen the end of the queue.
func (p *Pool) Wait() {
	startTime := time.Now()
	p.wait.Wait()
	p.logger.Debugf("Workers joined after %s", time.Since(startTime))

	for _, w := range p.workers {
		p.logger.Debugf("Worker %d rendered %d rows in %s", w.ID(), w.RowsCompleted(), w.ElapsedTime())
	}
}

func (p *Pool) Size() int {
	return len(p.workers)
}

func (p *Pool) Workers() []*Worker {
	return p.workers
}

// RowsCompleted sums the rows rendered by all workers; call it after Wait.
func (p *Pool) RowsCompleted() uint {
	var total uint
	for _, w := range p.workers {
		total += w.rowsCompleted
	}
	return total
}
