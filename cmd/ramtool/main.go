package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/ramkit/ramkit/cli/ramtool/cmd"
	"github.com/ramkit/ramkit/internal/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := cmd.New().Execute(ctx)
	stop()
	if err != nil {
		logger.CreateForPackage().Error("%v", err)
		os.Exit(1)
	}
}
