package misc

import (
	"fmt"
	"os"

	"github.com/BrugadaSyndrome/bslogger"
)

// LogSettings decide where component loggers write and whether Debug output
// (per worker statistics, timings, settings dumps) is emitted.
type LogSettings struct {
	File    *os.File
	Verbose bool
}

func (s LogSettings) NewLogger(name string) bslogger.Logger {
	if s.Verbose {
		return bslogger.NewLogger(name, bslogger.All, s.File)
	}
	return bslogger.NewLogger(name, bslogger.Normal, s.File)
}

func (s LogSettings) String() string {
	output := "\nLog settings\n"
	if s.File != nil {
		output += fmt.Sprintf("File: %s\n", s.File.Name())
	}
	output += fmt.Sprintf("Verbose: %t\n", s.Verbose)
	return output
}
