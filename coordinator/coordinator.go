package coordinator

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/raster"
	"mandelbrot/task"
	"mandelbrot/worker"

	"github.com/BrugadaSyndrome/bslogger"
)

// Coordinator owns the pixel buffer for one render. It lends rows to the
// worker pool through the job queue and only hands the buffer to the encoder
// once every worker has stopped.
type Coordinator struct {
	buffer        *raster.Buffer
	logger        bslogger.Logger
	mandelbrot    mandelbrot.Mandelbrot
	pool          *worker.Pool
	queue         *task.Queue
	rendered      bool
	rowsGenerated uint
	settings      Settings
}

func NewCoordinator(settings Settings) (*Coordinator, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}

	m, err := mandelbrot.NewMandelbrot(settings.MandelbrotSettings)
	if err != nil {
		return nil, err
	}
	buffer, err := raster.NewBuffer(settings.MandelbrotSettings.Width, settings.MandelbrotSettings.Height)
	if err != nil {
		return nil, err
	}

	coordinator := &Coordinator{
		buffer:     buffer,
		logger:     settings.LogSettings.NewLogger("Coordinator"),
		mandelbrot: m,
		queue:      task.NewQueue(),
		settings:   settings,
	}
	coordinator.pool, err = worker.NewPool(settings.WorkerSettings, &coordinator.mandelbrot, coordinator.queue, buffer, settings.LogSettings)
	if err != nil {
		return nil, err
	}
	coordinator.logger.Debug(settings.String())

	return coordinator, nil
}

// generateTasks enqueues every row index in ascending order and then closes
// the queue so idle workers can shut down.
func (c *Coordinator) generateTasks() {
	c.logger.Debug("Generating rows")
	startTime := time.Now()

	for row := 0; row < c.buffer.Height; row++ {
		if misc.CheckError(c.queue.Push(row), c.logger, misc.Error) {
			break
		}
		c.rowsGenerated++
	}
	c.queue.Close()

	c.logger.Debugf("Done generating %d rows in %s", c.rowsGenerated, time.Since(startTime))
}

// Render computes the whole image and returns the buffer. A Coordinator
// renders exactly once.
func (c *Coordinator) Render() (*raster.Buffer, error) {
	if c.rendered {
		return nil, errors.New("coordinator has already rendered its image")
	}
	c.rendered = true

	c.logger.Infof("Rendering %s at %dx%d with %d workers", c.settings.MandelbrotSettings.Viewport.String(), c.buffer.Width, c.buffer.Height, c.pool.Size())
	startTime := time.Now()

	var manager sync.WaitGroup
	manager.Go(c.generateTasks)
	c.pool.Start()

	manager.Wait()
	c.pool.Wait()
	c.logger.Debugf("Queue after join: %s", c.queue.String())
	if !c.queue.Closed() || c.queue.Len() != 0 {
		return nil, fmt.Errorf("workers stopped before the queue drained: %s", c.queue.String())
	}

	rows := c.pool.RowsCompleted()
	if rows != uint(c.buffer.Height) || c.rowsGenerated != uint(c.buffer.Height) {
		return nil, fmt.Errorf("rendered %d of %d rows (%d generated)", rows, c.buffer.Height, c.rowsGenerated)
	}

	c.logger.Infof("Rendered %d rows in %s", rows, time.Since(startTime))
	return c.buffer, nil
}

// Run renders the image and writes it to the configured output file.
func (c *Coordinator) Run() error {
	if c.settings.OutFile == "" {
		return errors.New("no output file supplied")
	}

	buffer, err := c.Render()
	if err != nil {
		return err
	}
	if err = raster.WriteBitmap(c.settings.OutFile, buffer.Width, buffer.Height, buffer.Pix); err != nil {
		return err
	}

	c.logger.Infof("Saved image to %s", c.settings.OutFile)
	return nil
}

func (c *Coordinator) Width() int {
	return c.buffer.Width
}

func (c *Coordinator) Height() int {
	return c.buffer.Height
}
