// Command ls lists the cubes available in a cube service installation,
// one identifier per line, in the order the service returns them.
//
// With no argument the installation comes from the cached configuration
// (see cube login); an optional url argument overrides it for this
// invocation only.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	cubeclient "github.com/cubeworks/go-cube-client/pkg/client"
	"github.com/cubeworks/go-cube-client/session"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newCommand(stdout, stderr)
	if err := cmd.Run(ctx, args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newCommand(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list cubes",
		ArgsUsage: "[url]",
		Writer:    stdout,
		ErrWriter: stderr,
		Action:    listCubesAction,
	}
}

func listCubesAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() > 1 {
		fmt.Fprintf(cmd.ErrWriter, "Usage: %s %s\n", cmd.Name, cmd.ArgsUsage)
		return fmt.Errorf("expected at most 1 argument: url")
	}

	sess, err := session.Resolve(cmd.Args().First())
	if err != nil {
		return err
	}

	// Listing failures surface immediately; already-printed identifiers
	// stay printed.
	client, err := sess.Client(cubeclient.WithRetryPolicy(cubeclient.NoRetry))
	if err != nil {
		return err
	}

	for guid, err := range client.Cubes().List(ctx) {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(cmd.Writer, guid); err != nil {
			return err
		}
	}
	return nil
}
