package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"repouploader.dev/repouploader/internal/cli"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Interrupts cancel the running git command so deferred cleanup still runs
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	code := cli.Execute(ctx, os.Args[1:], cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}, os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
