package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/moonsphere-systems/moonsphere-cli/cmd/msph/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := commands.Execute(ctx, os.Args[1:], &commands.Global{Out: os.Stdout, Err: os.Stderr})
	stop()
	os.Exit(code)
}
