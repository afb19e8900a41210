package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mandelbrot/coordinator"
	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/worker"

	"github.com/alecthomas/kong"
)

type cli struct {
	XMin    float64 `arg:"" name:"x_min" help:"Left edge of the rectangle (real axis)."`
	XMax    float64 `arg:"" name:"x_max" help:"Right edge of the rectangle (real axis)."`
	YMin    float64 `arg:"" name:"y_min" help:"Bottom edge of the rectangle (imaginary axis)."`
	YMax    float64 `arg:"" name:"y_max" help:"Top edge of the rectangle (imaginary axis)."`
	OutFile string  `arg:"" name:"out_file" help:"Bitmap file to write."`

	LogFile       string          `help:"Also write component logs to this file."`
	MaxIterations int             `help:"Iterations before a point is considered inside the set." default:"1000"`
	Palette       string          `help:"Colour palette (${enum})." enum:"fire,grayscale,ocean,polynomial" default:"polynomial"`
	Settings      kong.ConfigFlag `help:"JSON file with flag values, e.g. {\"max_iterations\": 500}."`
	Verbose       bool            `help:"Log per worker statistics, timings and settings." short:"v"`
	Width         int             `help:"Image width in pixels." default:"1500"`
	Workers       int             `help:"Number of render workers, 0 picks max(4, CPUs)." default:"0"`
}

func (c *cli) Validate() error {
	switch {
	case c.Width < 1:
		return fmt.Errorf("invalid width: %d", c.Width)
	case c.MaxIterations < 1:
		return fmt.Errorf("invalid max iterations: %d", c.MaxIterations)
	case c.Workers < 0:
		return fmt.Errorf("invalid worker count: %d", c.Workers)
	}
	return nil
}

func (c *cli) settings() coordinator.Settings {
	return coordinator.Settings{
		MandelbrotSettings: mandelbrot.Settings{
			MaxIterations: c.MaxIterations,
			Palette:       c.Palette,
			Viewport: mandelbrot.Viewport{
				XMin: c.XMin,
				XMax: c.XMax,
				YMin: c.YMin,
				YMax: c.YMax,
			},
			Width: c.Width,
		},
		LogSettings:    misc.LogSettings{Verbose: c.Verbose},
		OutFile:        c.OutFile,
		WorkerSettings: worker.Settings{Count: c.Workers},
	}
}

// separatePositionals stops the parser from reading negative bounds such as
// "-1.5" as short flags by inserting "--" before the first negative number.
// Flags therefore have to come before the rectangle.
func separatePositionals(args []string) []string {
	for i, arg := range args {
		if arg == "--" {
			return args
		}
		if isNegativeNumber(arg) {
			separated := make([]string, 0, len(args)+1)
			separated = append(separated, args[:i]...)
			separated = append(separated, "--")
			return append(separated, args[i:]...)
		}
	}
	return args
}

func isNegativeNumber(arg string) bool {
	if !strings.HasPrefix(arg, "-") {
		return false
	}
	_, err := strconv.ParseFloat(arg, 64)
	return err == nil
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	var c cli
	exitCode := -1
	parser, err := kong.New(&c,
		kong.Name("mandelbrot"),
		kong.Description("Render the Mandelbrot set over a rectangle of the complex plane into a 24-bit bitmap."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) {
			if exitCode < 0 {
				exitCode = code
			}
		}),
		kong.Configuration(kong.JSON),
	)
	if err != nil {
		fmt.Fprintf(stderr, "mandelbrot: error: %s\n", err)
		return 1
	}

	_, err = parser.Parse(separatePositionals(args))
	if exitCode >= 0 {
		// --help was requested
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		var parseErr *kong.ParseError
		if errors.As(err, &parseErr) && parseErr.Context != nil {
			parser.Stdout = stderr
			_ = parseErr.Context.PrintUsage(true)
			parser.Stdout = stdout
		}
		return 1
	}

	settings := c.settings()
	if err = settings.Verify(); err != nil {
		parser.Errorf("%s", err)
		return 1
	}

	if c.LogFile != "" {
		settings.LogSettings.File, err = os.Create(c.LogFile)
		if err != nil {
			parser.Errorf("could not create log file %q: %s", c.LogFile, err)
			return 1
		}
	}
	logger := settings.LogSettings.NewLogger("Main")
	if settings.LogSettings.File != nil {
		defer func() {
			misc.CheckError(settings.LogSettings.File.Close(), logger, misc.Warning)
		}()
	}

	logger.Infof("Image size %dx%d", settings.MandelbrotSettings.Width, settings.MandelbrotSettings.Height)

	coord, err := coordinator.NewCoordinator(settings)
	if err != nil {
		parser.Errorf("%s", err)
		return 1
	}
	if err = coord.Run(); err != nil {
		parser.Errorf("%s", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}
