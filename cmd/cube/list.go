package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

func newListCommand() *cli.Command {
	return &cli.Command{
		Name:    "ls",
		Aliases: []string{"list"},
		Usage:   "List cubes, one identifier per line",
		Action:  listAction,
	}
}

func listAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 0 {
		return fmt.Errorf("no arguments expected (use --url to override the installation)")
	}

	client, err := clientFromCommand(cmd)
	if err != nil {
		return err
	}

	for guid, err := range client.Cubes().List(ctx) {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(stdout(cmd), guid); err != nil {
			return err
		}
	}
	return nil
}
