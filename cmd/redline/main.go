package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/redline/internal/app"
	"github.com/tildaslashalef/redline/internal/commands"
)

// Version information - populated at build time
var (
	Version    = "dev"
	BuildTime  = "unknown"
	CommitHash = "unknown"
)

var globalFlags = []cli.Flag{
	&cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Usage:   "Target format: html, gitlab, github, jira, or json",
		Value:   "html",
	},
	&cli.StringFlag{
		Name:    "group-by",
		Aliases: []string{"g"},
		Usage:   "Grouping key: filename or category",
	},
	&cli.BoolFlag{
		Name:  "include-code",
		Usage: "Resolve range selectors and embed the referenced source code",
	},
	&cli.StringFlag{
		Name:    "out",
		Aliases: []string{"o"},
		Usage:   "Base name of the source CSV and output artifacts",
	},
	&cli.StringFlag{
		Name:  "template",
		Usage: "Custom HTML template file (html format only)",
	},
	&cli.StringFlag{
		Name:    "dir",
		Aliases: []string{"d"},
		Usage:   "Workspace root directory (default: current directory)",
	},
}

func main() {
	cliApp := &cli.App{
		Name:  "redline",
		Usage: "Export code-review comments to issue trackers and reports",
		Description: "Redline converts a CSV of code-review comments into export artifacts:\n" +
			"an HTML report, GitLab/GitHub/JIRA importable CSVs, or a raw JSON dump.\n\n" +
			"When run without subcommands, redline performs an export (default action).",
		Version: Version,
		Compiled: func() time.Time {
			t, err := time.Parse(time.RFC3339, BuildTime)
			if err != nil {
				return time.Now()
			}
			return t
		}(),
		Flags: globalFlags,
		Before: func(c *cli.Context) error {
			application, err := app.New()
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}

			// Store the app instance in the context for later use
			c.App.Metadata = map[string]interface{}{
				"app": application,
			}

			return nil
		},
		After: func(c *cli.Context) error {
			if application, ok := c.App.Metadata["app"].(*app.App); ok {
				return application.Shutdown()
			}
			return nil
		},
		Commands: []*cli.Command{
			commands.ExportCommand(),
			commands.PreviewCommand(),
			commands.HistoryCommand(),
			commands.MigrateCommand(),
		},
		Action: func(c *cli.Context) error {
			// Default action is to run the export command
			return commands.ExportCommand().Action(c)
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
