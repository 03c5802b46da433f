package commands

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/redline/internal/app"
	"github.com/tildaslashalef/redline/internal/utils"
)

// HistoryCommand returns the CLI command for listing past export runs
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List recent export runs",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Maximum number of runs to list",
				Value:   20,
			},
		},
		Action: historyAction,
	}
}

func historyAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if application.Runs == nil {
		utils.PrintWarning("History database is not available")
		return nil
	}

	runs, err := application.Runs.ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		return fmt.Errorf("listing export runs: %w", err)
	}

	if len(runs) == 0 {
		utils.PrintInfo("No export runs recorded yet")
		return nil
	}

	t := utils.NewTable("Label", "Format", "Output", "Rows", "Duration", "When")
	for _, run := range runs {
		t.AppendRow([]interface{}{
			run.Label,
			run.Format,
			run.OutputPath,
			run.Rows,
			run.Duration.Round(time.Millisecond),
			run.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	t.Render()

	return nil
}
