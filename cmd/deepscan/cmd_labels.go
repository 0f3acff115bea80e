package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"deepscan/internal/classify"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the detection categories",
	Long:  "List the categories the service classifies a video against, grouped by kind.",
	RunE:  runLabels,
}

func runLabels(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	for _, g := range classify.Groups() {
		fmt.Fprintf(out, "%s:\n", g.Name)
		for _, code := range g.Labels {
			fmt.Fprintf(out, "  %s\n", classify.DisplayNameWithCode(code))
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d categories, index-aligned with the service's prediction vector.\n", classify.NumLabels)
	return nil
}
