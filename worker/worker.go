package worker

import (
	"fmt"
	"time"

	"mandelbrot/misc"
	"mandelbrot/raster"
	"mandelbrot/task"

	"github.com/BrugadaSyndrome/bslogger"
)

// RowRenderer computes one row of pixels into dst. Implementations must be
// safe to call from several goroutines for distinct rows.
type RowRenderer interface {
	RenderRow(row int, dst []byte)
}

type Worker struct {
	buffer        *raster.Buffer
	id            int
	logger        bslogger.Logger
	queue         *task.Queue
	renderer      RowRenderer
	rowsCompleted uint
	elapsedTime   time.Duration
}

func NewWorker(id int, renderer RowRenderer, queue *task.Queue, buffer *raster.Buffer, logSettings misc.LogSettings) *Worker {
	return &Worker{
		buffer:   buffer,
		id:       id,
		logger:   logSettings.NewLogger(fmt.Sprintf("Worker %d", id)),
		queue:    queue,
		renderer: renderer,
	}
}

// processTasks renders rows until the queue reports end of stream. A row is
// completely written before the next one is requested.
func (w *Worker) processTasks() {
	w.logger.Debug("Processing rows")
	startTime := time.Now()

	for {
		row, ok := w.queue.Pop()
		if !ok {
			break
		}
		w.renderer.RenderRow(row, w.buffer.Row(row))
		w.rowsCompleted++
	}

	w.elapsedTime = time.Since(startTime)
	w.logger.Debugf("Rendered %d rows in %s", w.rowsCompleted, w.elapsedTime)
}

func (w *Worker) ID() int {
	return w.id
}

// RowsCompleted is only meaningful once the worker has stopped.
func (w *Worker) RowsCompleted() uint {
	return w.rowsCompleted
}

func (w *Worker) ElapsedTime() time.Duration {
	return w.elapsedTime
}
