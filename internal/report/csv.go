package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"deepscan/internal/classify"
)

// csvHeader is the export contract; consumers key on these exact names.
var csvHeader = []string{"Label Name", "Probability (%)"}

// WriteCSV writes the ranking as CSV, one row per category in ranking order.
func WriteCSV(w io.Writer, r classify.Ranking) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, e := range r {
		if err := cw.Write([]string{e.Label, strconv.FormatFloat(e.Percent, 'f', 2, 64)}); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSVFileName builds the default export file name for a video.
func CSVFileName(videoName string, now time.Time) string {
	return fmt.Sprintf("detection-%s-%d.csv", videoName, now.Unix())
}

// ExportCSV writes the ranking to path, creating parent directories.
func ExportCSV(path string, r classify.Ranking) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := WriteCSV(f, r); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
