package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/cubeworks/go-cube-client/pkg/downloader"
)

var quietFlag = &cli.BoolFlag{
	Name:    "quiet",
	Aliases: []string{"q"},
	Usage:   "suppress progress output",
}

func newFetchCommand() *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Download a result artifact to a local file",
		ArgsUsage: "<artifact-url> <dest>",
		Flags:     []cli.Flag{quietFlag},
		Action:    fetchAction,
	}
}

func fetchAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 2 {
		return fmt.Errorf("expected 2 arguments: artifact url and destination path")
	}

	artifactURL := cmd.Args().Get(0)
	dest := cmd.Args().Get(1)

	var progress downloader.ProgressFunc
	if !cmd.Bool(quietFlag.Name) {
		progress = func(downloaded, total int64) {
			if total > 0 {
				fmt.Fprintf(os.Stderr, "\r%d/%d bytes", downloaded, total)
			} else {
				fmt.Fprintf(os.Stderr, "\r%d bytes", downloaded)
			}
		}
		defer fmt.Fprintln(os.Stderr)
	}

	if err := downloader.DownloadWithProgress(ctx, artifactURL, dest, progress); err != nil {
		return err
	}
	fmt.Fprintf(stdout(cmd), "%s\n", dest)
	return nil
}
