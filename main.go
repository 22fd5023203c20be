package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/fireload-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/fireload-cli/internal/logger"
)

// interruptExitCode follows the shell convention of 128 + SIGINT.
const interruptExitCode = 130

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.Init(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(interruptExitCode)
		}
		logger.Error("%v", err)
		os.Exit(1)
	}
}
