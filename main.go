package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/propabilia/argus/cmd"
)

// set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// an interrupt cancels the run context; the sorter stops before the next image or group
	err := fang.Execute(
		context.Background(),
		cmd.NewRootCmd(),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM),
	)
	if err != nil {
		os.Exit(1)
	}
}
