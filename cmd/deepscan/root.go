// deepscan is the main CLI: analyze a video (local file or Instagram URL)
// against the remote detection service, then browse and export past results.
//
// Usage:
//
//	deepscan analyze <video.mp4 | instagram-url> [--csv] [--markdown]
//	deepscan ping
//	deepscan history [--limit=N]
//	deepscan export <run-id> [-o results.csv]
//	deepscan labels
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"deepscan/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	configPath string
	logLevel   string
	logFormat  string
}

var rootCmd = &cobra.Command{
	Use:   "deepscan",
	Short: "Check videos for AI-generated or deepfake content",
	Long: "Deepscan uploads a video to a remote detection service and renders\nthe per-category probabilities as tables, a bar chart, and a CSV export.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		level, err := logging.ParseLevel(rootFlags.logLevel)
		if err != nil {
			return err
		}
		logging.Init(level, rootFlags.logFormat)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "", "Config file path (default: .deepscan/config.yaml if present)")
	pf.StringVar(&rootFlags.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(labelsCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
