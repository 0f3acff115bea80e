package main

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"deepscan/internal/classify"
	"deepscan/internal/report"
)

var exportFlags struct {
	dbPath  string
	outPath string
}

var exportCmd = &cobra.Command{
	Use:   "export <run-id>",
	Short: "Export a recorded run's ranking as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.dbPath, "db", "", "History DB path")
	f.StringVarP(&exportFlags.outPath, "output", "o", "", "CSV output path (default: under the configured output dir)")
}

func runExport(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid run ID %q", args[0])
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st, err := openStore(cfg, exportFlags.dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(id)
	if err != nil {
		return err
	}
	ranking, err := classify.Rank(run.Predictions)
	if err != nil {
		return fmt.Errorf("run #%d has a corrupt prediction vector: %w", id, err)
	}

	path := exportFlags.outPath
	if path == "" {
		path = filepath.Join(cfg.OutputDir, report.CSVFileName(run.FileName, time.Now()))
	}
	if err := report.ExportCSV(path, ranking); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "CSV written to %s\n", path)
	return nil
}
