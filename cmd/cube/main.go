// Command cube is the command line interface for cube service
// installations: list cubes, inspect manifests, run slice queries,
// fetch result artifacts, and cache login configuration.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	cubeclient "github.com/cubeworks/go-cube-client/pkg/client"
	"github.com/cubeworks/go-cube-client/session"
)

var (
	urlFlag = &cli.StringFlag{
		Name:    "url",
		Aliases: []string{"u"},
		Usage:   "cube service base URL (overrides the cached configuration)",
	}
	configFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "path to the cached configuration file",
	}
	timeoutFlag = &cli.DurationFlag{
		Name:    "timeout",
		Aliases: []string{"t"},
		Usage:   "HTTP client timeout (e.g. 30s, 1m)",
	}
	verboseFlag = &cli.BoolFlag{
		Name:  "verbose",
		Usage: "log requests to stderr",
	}
)

func main() {
	if err := newRootCommand().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "cube",
		Usage: "Interact with a cube service",
		Flags: []cli.Flag{urlFlag, configFlag, timeoutFlag, verboseFlag},
		Commands: []*cli.Command{
			newListCommand(),
			newManifestCommand(),
			newSliceCommand(),
			newFetchCommand(),
			newLoginCommand(),
		},
	}
}

// resolveSession builds the session for a command invocation: cached
// configuration first, then the --url override, then per-invocation
// flags. Nothing is persisted.
func resolveSession(cmd *cli.Command) (*session.Session, error) {
	override := cmd.String(urlFlag.Name)

	var (
		sess *session.Session
		err  error
	)
	if path := cmd.String(configFlag.Name); path != "" {
		sess, err = session.Load(path)
	} else {
		sess, err = session.FromConfig()
	}
	if err != nil {
		if !errors.Is(err, session.ErrNoConfig) || override == "" {
			return nil, err
		}
	}

	if override != "" {
		sess.BaseURL = override
	}
	if timeout := cmd.Duration(timeoutFlag.Name); timeout > 0 {
		sess.Timeout = timeout
	}
	return sess, nil
}

func clientFromCommand(cmd *cli.Command) (*cubeclient.Client, error) {
	sess, err := resolveSession(cmd)
	if err != nil {
		return nil, err
	}
	var opts []cubeclient.ClientOption
	if cmd.Bool(verboseFlag.Name) {
		opts = append(opts, cubeclient.WithLogger(stderrLogger{}))
	}
	return sess.Client(opts...)
}

type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}

func (stderrLogger) Errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
