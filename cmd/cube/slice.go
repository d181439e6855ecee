package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"
)

var assembleFlag = &cli.BoolFlag{
	Name:  "assemble",
	Usage: "print the assembled dense values instead of the raw tiles",
}

func newSliceCommand() *cli.Command {
	return &cli.Command{
		Name:      "slice",
		Usage:     "Fetch one slice of a cube",
		ArgsUsage: "<guid> <dim> <lineno>",
		Flags:     []cli.Flag{assembleFlag},
		Action:    sliceAction,
	}
}

func sliceAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 3 {
		return fmt.Errorf("expected 3 arguments: guid, dimension, line number")
	}

	guid := cmd.Args().Get(0)
	dim, err := strconv.Atoi(cmd.Args().Get(1))
	if err != nil {
		return fmt.Errorf("dimension must be an integer: %w", err)
	}
	lineno, err := strconv.Atoi(cmd.Args().Get(2))
	if err != nil {
		return fmt.Errorf("line number must be an integer: %w", err)
	}

	client, err := clientFromCommand(cmd)
	if err != nil {
		return err
	}

	result, err := client.Query().Slice(ctx, guid, dim, lineno)
	if err != nil {
		return err
	}

	if cmd.Bool(assembleFlag.Name) {
		values, err := result.Assemble()
		if err != nil {
			return err
		}
		return printJSON(stdout(cmd), map[string]any{
			"shape": result.Header.Shape(),
			"v":     values,
		})
	}
	return printJSON(stdout(cmd), result)
}
