package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"deepscan/internal/classify"
	"deepscan/internal/detect"
	"deepscan/internal/format"
	"deepscan/internal/instagram"
	"deepscan/internal/logging"
	"deepscan/internal/media"
	"deepscan/internal/report"
	"deepscan/internal/store"
)

var analyzeFlags struct {
	endpoint string
	timeout  int
	dbPath   string
	csv      bool
	csvPath  string
	markdown bool
	jsonDump bool
	noStore  bool
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <video-file | instagram-url>",
	Short: "Upload a video to the detection service and show the results",
	Long: `Analyze a video for AI-generated content and render the per-category
probabilities as a ranked table, a bar chart, and summary stats.

Usage:
  deepscan analyze clip.mp4                          # Local video file
  deepscan analyze https://instagram.com/reel/XYZ/   # Instagram post
  deepscan analyze clip.mp4 --csv                    # Also export CSV

The service endpoint is read from the DEEPSCAN_ENDPOINT environment
variable or the config file, or can be set with --endpoint.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVar(&analyzeFlags.endpoint, "endpoint", "", "Detection service base URL (default: $DEEPSCAN_ENDPOINT)")
	f.IntVar(&analyzeFlags.timeout, "timeout", 0, "Request timeout in seconds (default: from config)")
	f.StringVar(&analyzeFlags.dbPath, "db", "", "History DB path (default: "+store.DefaultDBPath+")")
	f.BoolVar(&analyzeFlags.csv, "csv", false, "Export the ranking as CSV")
	f.StringVarP(&analyzeFlags.csvPath, "output", "o", "", "CSV output path (implies --csv)")
	f.BoolVar(&analyzeFlags.markdown, "markdown", false, "Render tables as Markdown")
	f.BoolVar(&analyzeFlags.jsonDump, "json", false, "Also print the raw service response (debug)")
	f.BoolVar(&analyzeFlags.noStore, "no-store", false, "Skip recording the run in history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	source := args[0]
	out := cmd.OutOrStdout()
	logger := logging.New("analyze")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	endpoint, err := resolveEndpoint(cfg, analyzeFlags.endpoint)
	if err != nil {
		return err
	}
	if analyzeFlags.timeout > 0 {
		cfg.TimeoutSeconds = analyzeFlags.timeout
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Resolve the input to a local file. The Instagram path downloads to a
	// temp dir that is removed after the run, success or not.
	path := source
	if instagram.IsPostURL(source) {
		fmt.Fprintf(out, "Downloading video from Instagram...\n")
		dl := instagram.NewDownloader(instagram.WithLogger(logging.New("instagram")))
		dlPath, cleanup, err := dl.Download(ctx, source)
		if err != nil {
			return fmt.Errorf("instagram download: %w", err)
		}
		defer cleanup()
		path = dlPath
	} else if !fileExists(path) {
		return fmt.Errorf("video file not found: %s", path)
	}

	file, err := media.Load(path, cfg.MaxFileBytes(), cfg.SupportedFormats)
	if err != nil {
		return err
	}
	printFileDetails(out, file, analyzeFlags.markdown)

	client, err := detect.New(endpoint,
		detect.WithTimeout(cfg.Timeout()),
		detect.WithLogger(logging.New("detect")),
	)
	if err != nil {
		return err
	}

	video, err := file.Open()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Uploading to detection service...\n")
	result, err := client.Detect(ctx, file.Name, file.MediaType, video)
	_ = video.Close()
	if err != nil {
		logger.Error("detection failed", "source", source, "error", err)
		return fmt.Errorf("%s", detect.UserMessage(err))
	}

	if analyzeFlags.jsonDump {
		raw, _ := json.MarshalIndent(result, "", "  ")
		fmt.Fprintf(out, "Raw response:\n%s\n\n", raw)
	}

	ranking, err := classify.Rank(result.Predictions)
	if err != nil {
		return err
	}
	top := ranking.Top()
	tier := classify.TierFor(top.Percent, cfg.Thresholds())

	mode := format.ASCII
	if analyzeFlags.markdown {
		mode = format.Markdown
	}

	fmt.Fprintf(out, "\n%s\n\n", report.Banner(tier, top))
	fmt.Fprintf(out, "%s\n\n", report.Table(ranking, mode))
	fmt.Fprintf(out, "Top %d probabilities:\n%s\n", min(report.DefaultChartTop, len(ranking)),
		report.Chart(ranking, report.DefaultChartTop, report.DefaultChartWidth))
	fmt.Fprintf(out, "%s\n", report.Stats(classify.Summary(ranking), mode))

	if !analyzeFlags.noStore {
		st, err := openStore(cfg, analyzeFlags.dbPath)
		if err != nil {
			return err
		}
		defer st.Close()
		id, err := st.SaveRun(&store.Run{
			Source:      source,
			FileName:    file.Name,
			FileSize:    file.Size,
			MediaType:   file.MediaType,
			TopLabel:    top.Label,
			TopPercent:  top.Percent,
			Tier:        string(tier),
			Predictions: result.Predictions,
		})
		if err != nil {
			return fmt.Errorf("record run: %w", err)
		}
		fmt.Fprintf(out, "\nRecorded as run #%d\n", id)
	}

	if analyzeFlags.csv || analyzeFlags.csvPath != "" {
		csvPath := analyzeFlags.csvPath
		if csvPath == "" {
			csvPath = filepath.Join(cfg.OutputDir, report.CSVFileName(file.Name, time.Now()))
		}
		if err := report.ExportCSV(csvPath, ranking); err != nil {
			return err
		}
		fmt.Fprintf(out, "CSV written to %s\n", csvPath)
	}

	return nil
}

// printFileDetails shows what is about to be uploaded, including best-effort
// MP4 container metadata.
func printFileDetails(out io.Writer, file *media.File, markdown bool) {
	mode := format.ASCII
	if markdown {
		mode = format.Markdown
	}
	tbl := format.NewTable(mode)
	tbl.Header("File", "Size", "Type")
	tbl.Row(file.Name, format.FmtBytes(file.Size), file.MediaType)
	fmt.Fprintf(out, "%s\n", tbl.String())

	if probe, err := media.ProbeMP4(file.Path); err == nil {
		if probe.Duration > 0 {
			fmt.Fprintf(out, "Duration: %s", format.FmtDuration(probe.Duration))
			if probe.Width > 0 {
				fmt.Fprintf(out, "  |  %dx%d", probe.Width, probe.Height)
			}
			fmt.Fprintln(out)
		}
	}
}
