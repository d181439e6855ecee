package main

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v3"

	"github.com/cubeworks/go-cube-client/session"
)

// askOneFunc is swapped out in tests.
var askOneFunc = survey.AskOne

var (
	loginTokenFlag = &cli.StringFlag{
		Name:  "token",
		Usage: "bearer token for the installation",
	}
	loginAPIKeyFlag = &cli.StringFlag{
		Name:  "api-key",
		Usage: "API key for the installation",
	}
	loginAPIKeyHeaderFlag = &cli.StringFlag{
		Name:  "api-key-header",
		Usage: "header carrying the API key",
		Value: "Authorization",
	}
	loginNoInputFlag = &cli.BoolFlag{
		Name:  "no-input",
		Usage: "fail instead of prompting for missing values",
	}
)

func newLoginCommand() *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Cache the installation URL and credentials for later runs",
		Flags:  []cli.Flag{loginTokenFlag, loginAPIKeyFlag, loginAPIKeyHeaderFlag, loginNoInputFlag},
		Action: loginAction,
	}
}

func loginAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 0 {
		return fmt.Errorf("no arguments expected (use --url)")
	}

	sess := &session.Session{
		BaseURL:      cmd.String(urlFlag.Name),
		Token:        cmd.String(loginTokenFlag.Name),
		APIKey:       cmd.String(loginAPIKeyFlag.Name),
		APIKeyHeader: cmd.String(loginAPIKeyHeaderFlag.Name),
	}
	noInput := cmd.Bool(loginNoInputFlag.Name)

	if sess.BaseURL == "" {
		if noInput {
			return fmt.Errorf("--url is required with --no-input")
		}
		prompt := &survey.Input{Message: "Cube service URL:"}
		if err := askOneFunc(prompt, &sess.BaseURL, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	if sess.Token == "" && sess.APIKey == "" && !noInput {
		// empty answer means an open installation
		prompt := &survey.Password{Message: "Bearer token (leave empty for none):"}
		if err := askOneFunc(prompt, &sess.Token); err != nil {
			return err
		}
	}

	// Verify before caching so a typo does not poison later runs.
	client, err := sess.Client()
	if err != nil {
		return err
	}
	if _, err := client.Cubes().ListPage(ctx); err != nil {
		return fmt.Errorf("could not reach %s: %w", sess.BaseURL, err)
	}

	if path := cmd.String(configFlag.Name); path != "" {
		if err := session.SaveTo(path, sess); err != nil {
			return err
		}
		fmt.Fprintf(stdout(cmd), "Configuration written to %s\n", path)
		return nil
	}

	if err := sess.Save(); err != nil {
		return err
	}
	fmt.Fprintf(stdout(cmd), "Configuration written to %s\n", sess.Path())
	return nil
}
