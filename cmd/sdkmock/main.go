package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/openkcm/sdkmock/cmd/sdkmock/commands"
	"github.com/openkcm/sdkmock/internal/log"
)

// BuildInfo will be set by the build system
var BuildInfo = "{}"

func main() {
	ctx, cancelOnSignal := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)

	err := commands.NewRootCmd(BuildInfo).ExecuteContext(ctx)

	cancelOnSignal()

	if err != nil {
		log.Error(ctx, "Failed to run the command", err)
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
