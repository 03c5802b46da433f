// Package commands defines the redline CLI commands.
package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/redline/internal/app"
	"github.com/tildaslashalef/redline/internal/export"
	"github.com/tildaslashalef/redline/internal/utils"
)

// ExportCommand returns the CLI command for exporting review comments
func ExportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export review comments to a target format",
		Description: "Reads the review comment CSV from the workspace and writes the " +
			"chosen export artifact next to it: an HTML report, a GitLab/GitHub/JIRA " +
			"importable CSV, or a raw JSON dump.",
		Flags: []cli.Flag{
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
		},
		Action: exportAction,
	}
}

func exportAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	format, err := export.ParseFormat(c.String("format"))
	if err != nil {
		return err
	}

	opts, err := optionsFromFlags(c, application)
	if err != nil {
		return err
	}

	result, err := application.Export.Export(c.Context, format, opts)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Export failed: %s", err))
		return err
	}

	utils.PrintSuccess(fmt.Sprintf("Exported %d comment(s) to %s", result.Rows, result.OutputPath))

	t := utils.NewTable("Format", "Output", "Rows", "Groups", "Duration")
	t.AppendRow([]interface{}{
		result.Format,
		result.OutputPath,
		result.Rows,
		result.Groups,
		result.Duration.Round(time.Millisecond),
	})
	t.Render()

	return nil
}

// optionsFromFlags builds export options from configuration with any
// CLI flag overrides applied.
func optionsFromFlags(c *cli.Context, application *app.App) (export.Options, error) {
	root := c.String("dir")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return export.Options{}, fmt.Errorf("failed to get current working directory: %w", err)
		}
		root = cwd
	}

	opts := export.OptionsFromConfig(root, application.Config.Export)

	if v := c.String("group-by"); v != "" {
		switch export.GroupKey(v) {
		case export.GroupByFilename, export.GroupByCategory:
			opts.GroupBy = export.GroupKey(v)
		default:
			return export.Options{}, fmt.Errorf("invalid grouping key: %q", v)
		}
	}
	if c.IsSet("include-code") {
		opts.IncludeCode = c.Bool("include-code")
	}
	if v := c.String("out"); v != "" {
		opts.Filename = v
	}
	if v := c.String("template"); v != "" {
		opts.TemplatePath = v
	}

	return opts, nil
}
