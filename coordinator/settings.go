package coordinator

import (
	"fmt"

	"mandelbrot/mandelbrot"
	"mandelbrot/misc"
	"mandelbrot/worker"
)

type Settings struct {
	LogSettings        misc.LogSettings
	MandelbrotSettings mandelbrot.Settings
	OutFile            string
	WorkerSettings     worker.Settings
}

func (s *Settings) Verify() error {
	if err := s.MandelbrotSettings.Verify(); err != nil {
		return err
	}
	if err := s.WorkerSettings.Verify(); err != nil {
		return err
	}
	return nil
}

func (s *Settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("Out File: %s\n", s.OutFile)
	output += s.LogSettings.String()
	output += s.MandelbrotSettings.String()
	output += s.WorkerSettings.String()
	return output
}
