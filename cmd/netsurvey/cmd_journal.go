package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/newtron-network/netsurvey/pkg/cli"
	"github.com/newtron-network/netsurvey/pkg/journal"
)

var (
	journalDevice string
	journalRun    string
	journalLast   string
	journalLimit  int
	journalFailed bool
	journalJSON   bool
)

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Show per-device outcomes of past runs",
	Long: `Show the run journal: one entry per device per run, with its outcome,
the sections that fell back to empty and the sinks that received the report.

Examples:
  netsurvey journal
  netsurvey journal -d PE1 --last 24h
  netsurvey journal --failed --limit 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := journal.Filter{
			Device:      journalDevice,
			RunID:       journalRun,
			Limit:       journalLimit,
			FailureOnly: journalFailed,
		}
		if journalLast != "" {
			d, err := time.ParseDuration(journalLast)
			if err != nil {
				return fmt.Errorf("invalid duration: %s", journalLast)
			}
			filter.Since = time.Now().Add(-d)
		}

		events, err := journal.Open(userSettings.GetJournal()).Query(filter)
		if err != nil {
			return fmt.Errorf("querying journal: %w", err)
		}

		out := cmd.OutOrStdout()
		if journalJSON {
			return json.NewEncoder(out).Encode(events)
		}
		if len(events) == 0 {
			fmt.Fprintln(out, "No journal entries found")
			return nil
		}

		t := cli.NewTableTo(out, "TIMESTAMP", "RUN", "DEVICE", "STATUS", "DURATION", "DETAIL")
		for _, e := range events {
			detail := e.Error
			if e.Success {
				detail = strings.Join(e.Degraded, ",")
			}
			t.Row(
				e.Timestamp.Format("2006-01-02 15:04:05"),
				shortRun(e.RunID),
				e.Device,
				cli.Outcome(e.Success, len(e.Degraded)),
				e.Duration.Round(time.Millisecond).String(),
				detail,
			)
		}
		return t.Flush()
	},
}

// shortRun abbreviates a run id to its first UUID group.
func shortRun(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

func init() {
	journalCmd.Flags().StringVarP(&journalDevice, "device", "d", "", "Filter by device")
	journalCmd.Flags().StringVar(&journalRun, "run", "", "Filter by run id")
	journalCmd.Flags().StringVar(&journalLast, "last", "", "Show entries from last duration (e.g., 24h)")
	journalCmd.Flags().IntVar(&journalLimit, "limit", 100, "Show at most the newest N entries")
	journalCmd.Flags().BoolVar(&journalFailed, "failed", false, "Show only failed devices")
	journalCmd.Flags().BoolVar(&journalJSON, "json", false, "JSON output")
}
