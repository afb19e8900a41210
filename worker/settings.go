package worker

import (
	"fmt"
	"runtime"
)

const MinimumCount = 4

type Settings struct {
	Count int
}

// DefaultCount is the pool size used when none is configured: one worker per
// logical CPU, but never fewer than MinimumCount.
func DefaultCount() int {
	return max(MinimumCount, runtime.NumCPU())
}

func (s *Settings) Verify() error {
	if s.Count < 0 {
		return fmt.Errorf("invalid worker count %d", s.Count)
	}
	if s.Count == 0 {
		s.Count = DefaultCount()
	}
	return nil
}

func (s *Settings) String() string {
	output := "\nWorker settings\n"
	output += fmt.Sprintf("Count: %d\n", s.Count)
	return output
}
