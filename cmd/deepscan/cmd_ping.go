package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"deepscan/internal/detect"
	"deepscan/internal/logging"
)

var pingFlags struct {
	endpoint string
}

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the detection service is reachable",
	RunE:  runPing,
}

func init() {
	pingCmd.Flags().StringVar(&pingFlags.endpoint, "endpoint", "", "Detection service base URL (default: $DEEPSCAN_ENDPOINT)")
}

func runPing(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	endpoint, err := resolveEndpoint(cfg, pingFlags.endpoint)
	if err != nil {
		return err
	}

	client, err := detect.New(endpoint,
		detect.WithTimeout(10*time.Second),
		detect.WithLogger(logging.New("detect")),
	)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if err := client.Ping(ctx); err != nil {
		return fmt.Errorf("%s", detect.UserMessage(err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Detection service is reachable at %s\n", endpoint)
	return nil
}
