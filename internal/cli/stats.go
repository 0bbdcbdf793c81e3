package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"buckets/internal/stats"
)

func newStatsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print per-bucket progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, s, done, err := setup(opts)
			if err != nil {
				return err
			}
			defer done()

			fmt.Fprintln(cmd.OutOrStdout(), renderStats(stats.Overview(s.Snapshot().Tasks())))
			return nil
		},
	}
}

var headerCell = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cell = lipgloss.NewStyle().Padding(0, 1)

func renderStats(overview []stats.Summary) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("BUCKET", "TOTAL", "COMPLETED", "PENDING", "PROGRESS").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerCell
			}
			return cell
		})
	for _, s := range overview {
		t.Row(
			s.Bucket.Label(),
			strconv.Itoa(s.Total),
			strconv.Itoa(s.Completed),
			strconv.Itoa(s.Pending()),
			fmt.Sprintf("%d%%", s.Percent()),
		)
	}
	return t.String()
}
