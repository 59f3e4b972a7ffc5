package cmd

import (
	"fmt"
	"os"

	"github.com/propabilia/argus/internal/sorter"
	"github.com/schollz/progressbar/v3"
)

const progressSteps = 1000

// barReporter shows run progress as a progress bar with the latest log line as its description
type barReporter struct {
	bar *progressbar.ProgressBar
}

func newBarReporter() *barReporter {
	bar := progressbar.NewOptions64(
		progressSteps,
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Starting"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(os.Stderr, "\n")
		}),
		progressbar.OptionSetRenderBlankState(true),
	)
	return &barReporter{bar: bar}
}

func (b *barReporter) Log(message string) {
	const maxLen = 48
	runes := []rune(message)
	if len(runes) > maxLen {
		message = string(runes[:maxLen-3]) + "..."
	}
	b.bar.Describe(message)
}

func (b *barReporter) Progress(fraction float64) {
	_ = b.bar.Set64(int64(fraction * progressSteps))
}

func (b *barReporter) Finish() {
	_ = b.bar.Finish()
}

// newReporter picks a progress bar on a terminal and plain log lines otherwise
func newReporter() (sorter.Reporter, func()) {
	if !stderrIsTerminal() {
		return sorter.SlogReporter{}, func() {}
	}
	r := newBarReporter()
	return r, r.Finish
}
