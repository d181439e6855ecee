package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func newManifestCommand() *cli.Command {
	return &cli.Command{
		Name:      "manifest",
		Usage:     "Fetch the manifest for a cube",
		ArgsUsage: "<guid>",
		Action:    manifestAction,
	}
}

func manifestAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected 1 argument: cube guid")
	}

	client, err := clientFromCommand(cmd)
	if err != nil {
		return err
	}

	manifest, err := client.Cubes().Manifest(ctx, cmd.Args().First())
	if err != nil {
		return err
	}

	return printJSON(stdout(cmd), manifest)
}
