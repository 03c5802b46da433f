package commands

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/redline/internal/app"
	"github.com/tildaslashalef/redline/internal/export"
	"github.com/tildaslashalef/redline/internal/utils"
)

// PreviewCommand returns the CLI command for previewing review comments
func PreviewCommand() *cli.Command {
	return &cli.Command{
		Name:        "preview",
		Usage:       "Render review comments in the terminal",
		Description: "Renders the Markdown description of the first comments in the source CSV, as the issue exports would contain them.",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of comments to render",
				Value:   10,
			},
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"d"},
				Usage:   "Workspace root directory (default: current directory)",
			},
		},
		Action: previewAction,
	}
}

func previewAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	root := c.String("dir")
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current working directory: %w", err)
		}
		root = cwd
	}

	opts := export.OptionsFromConfig(root, application.Config.Export)

	markdown, err := application.Export.Preview(c.Context, opts, c.Int("limit"))
	if err != nil {
		utils.PrintError(fmt.Sprintf("Preview failed: %s", err))
		return err
	}

	fmt.Print(utils.RenderMarkdown(markdown))
	return nil
}
