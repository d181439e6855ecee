// Command cube-tui is an interactive browser for a cube service
// installation: a cube list on the left, the selected cube's manifest
// on the right.
//
// Usage: cube-tui [url]. Without an argument the installation comes
// from the cached configuration.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/cubeworks/go-cube-client/session"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if len(os.Args) > 2 {
		fmt.Fprintln(os.Stderr, "usage: cube-tui [url]")
		os.Exit(2)
	}
	var override string
	if len(os.Args) == 2 {
		override = os.Args[1]
	}

	sess, err := session.Resolve(override)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	client, err := sess.Client()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	tui := NewTUI(ctx, client)
	go func() {
		<-ctx.Done()
		tui.Stop()
	}()

	if err := tui.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
