package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xvierd/ignite-timer/internal/domain"
	"github.com/xvierd/ignite-timer/internal/ports"
	"github.com/xvierd/ignite-timer/internal/services"
)

var historyFilter string

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the cycles of this session",
	Long: `Open the history view listing every cycle started in this process,
newest first. With --json the list is printed instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return printHistoryJSON(cmd.OutOrStdout(), services.History(app.cycles.Cycles(), historyFilter))
		}
		return runApp(cmd.Context(), ports.RouteHistory)
	},
}

func init() {
	historyCmd.Flags().StringVarP(&historyFilter, "filter", "f", "", "Fuzzy filter on task names (with --json)")
}

func printHistoryJSON(w io.Writer, cycles []*domain.Cycle) error {
	list := make([]map[string]interface{}, 0, len(cycles))
	for _, c := range cycles {
		entry := map[string]interface{}{
			"id":             c.ID,
			"task":           c.Task,
			"minutes_amount": c.MinutesAmount,
			"start_date":     c.StartDate.Format(time.RFC3339),
			"started":        humanize.Time(c.StartDate),
			"status":         string(c.Status()),
		}
		if c.InterruptedDate != nil {
			entry["interrupted_date"] = c.InterruptedDate.Format(time.RFC3339)
		}
		if c.FinishedDate != nil {
			entry["finished_date"] = c.FinishedDate.Format(time.RFC3339)
		}
		if c.GitBranch != "" {
			entry["git_branch"] = c.GitBranch
			entry["git_commit"] = c.GitCommit
		}
		list = append(list, entry)
	}
	data := map[string]interface{}{
		"cycles": list,
		"count":  len(list),
	}
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cycles: %w", err)
	}
	fmt.Fprintln(w, string(jsonData))
	return nil
}
