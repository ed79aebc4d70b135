// Command braveagent is an interactive assistant that answers questions by
// searching the web with the Brave Search API.
//
// Run it without arguments to chat; when no .env file exists in the working
// directory it is created interactively first. Run "braveagent setup" to
// (re)write the file.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
