// Command tpl renders templates from the command line.
//
//	tpl render 'Hello, {{ name | title }}' '{"name": "sir"}'
//	tpl vars --file greeting.tpl
//	tpl watch greeting --dir templates --context ctx.yaml
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}
