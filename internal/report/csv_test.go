package report_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"deepscan/internal/classify"
	"deepscan/internal/report"
)

func TestWriteCSV_ExactContract(t *testing.T) {
	ranking := classify.Ranking{
		{Label: "SORA", Percent: 93.5},
		{Label: "KLING", Percent: 4.25},
		{Label: "AI_GEN", Percent: 0},
	}

	var b strings.Builder
	if err := report.WriteCSV(&b, ranking); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	want := "Label Name,Probability (%)\n" +
		"SORA,93.50\n" +
		"KLING,4.25\n" +
		"AI_GEN,0.00\n"
	if diff := cmp.Diff(want, b.String()); diff != "" {
		t.Errorf("CSV mismatch (-want +got):\n%s", diff)
	}
}

func TestExportCSV_CreatesParents(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/out/nested/results.csv"
	ranking := classify.Ranking{{Label: "VEO", Percent: 50}}
	if err := report.ExportCSV(path, ranking); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
}

func TestCSVFileName(t *testing.T) {
	got := report.CSVFileName("clip.mp4", timeUnix(1700000000))
	if got != "detection-clip.mp4-1700000000.csv" {
		t.Errorf("CSVFileName = %q", got)
	}
}
