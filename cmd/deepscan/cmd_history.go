package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"deepscan/internal/format"
)

var historyFlags struct {
	dbPath   string
	limit    int
	markdown bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded analysis runs",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.StringVar(&historyFlags.dbPath, "db", "", "History DB path")
	f.IntVar(&historyFlags.limit, "limit", 20, "Maximum runs to show (0 = all)")
	f.BoolVar(&historyFlags.markdown, "markdown", false, "Render as Markdown")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, historyFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns(historyFlags.limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No analysis runs recorded yet. Run 'deepscan analyze' first.")
		return nil
	}

	mode := format.ASCII
	if historyFlags.markdown {
		mode = format.Markdown
	}
	tbl := format.NewTable(mode)
	tbl.Header("ID", "When", "File", "Top Label", "Probability", "Tier")
	tbl.Columns(
		format.ColumnConfig{Number: 3, MaxWidth: 32},
		format.ColumnConfig{Number: 5, Align: format.AlignRight},
	)
	for _, r := range runs {
		tbl.Row(
			r.ID,
			r.CreatedAt.Local().Format(time.DateTime),
			format.Truncate(r.FileName, 32),
			r.TopLabel,
			format.FmtPercent(r.TopPercent),
			r.Tier,
		)
	}
	fmt.Fprintf(out, "%s\n", tbl.String())
	return nil
}
