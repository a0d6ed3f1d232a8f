package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/RyanBlaney/sonido-voz/analysis"
)

func newAnalyzeCmd(a *app) *cobra.Command {
	var sampleRate int

	cmd := &cobra.Command{
		Use:   "analyze <audio-file>",
		Short: "Analyze a local audio file and print the report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read audio file: %w", err)
			}

			analyzer := analysis.NewAnalyzer(a.cfg.PipelineConfig())
			report, err := analyzer.AnalyzeBytes(data, sampleRate)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		},
	}

	cmd.Flags().IntVar(&sampleRate, "sample-rate", 0, "Declared sample rate for raw/ambiguous payloads (0 = auto)")

	return cmd
}
