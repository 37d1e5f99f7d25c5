// Command todos runs the Todo resource service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jacentio/todos/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := cli.Execute(ctx)
	stop()
	os.Exit(code)
}
