package sorter

import "log/slog"

// Reporter receives user-facing log lines and progress fractions in [0,1].
// Calls are notifications only; a Reporter must not block the run.
type Reporter interface {
	Log(message string)
	Progress(fraction float64)
}

type noopReporter struct{}

func (noopReporter) Log(string)       {}
func (noopReporter) Progress(float64) {}

// SlogReporter forwards log lines to slog and drops progress
type SlogReporter struct{}

func (SlogReporter) Log(message string) {
	slog.Info(message)
}

func (SlogReporter) Progress(float64) {}

// progress keeps reported fractions non-decreasing
type progress struct {
	reporter Reporter
	last     float64
}

func (p *progress) set(fraction float64) {
	if fraction < p.last {
		return
	}
	if fraction > 1 {
		fraction = 1
	}
	p.last = fraction
	p.reporter.Progress(fraction)
}
