package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bull/research-insights/internal/markdown"
	"github.com/bull/research-insights/internal/report"
)

func newRunCmd(g *globalOptions) *cobra.Command {
	var (
		format string
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full analysis pipeline",
		Long: `Runs every stage against the corpus and prints the final report.

With --out, report.json, report.md and report.html are written to the
directory instead and their paths are printed.

Examples:
  research run
  research run --format markdown
  research run --papers papers.yaml --out ./reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if format == "" {
				format = e.cfg.Output.Format
			}
			if outDir == "" {
				outDir = e.cfg.Output.Dir
			}

			rc, err := e.pipeline.Run(cmd.Context(), e.corpus)
			if err != nil {
				return fmt.Errorf("run pipeline: %w", err)
			}
			renderer := markdown.NewRenderer(e.cfg.Output.OutlineDepth)

			out := cmd.OutOrStdout()
			if outDir != "" {
				paths, err := report.WriteFiles(outDir, rc.Report, renderer)
				if err != nil {
					return fmt.Errorf("write report: %w", err)
				}
				for _, p := range paths {
					fmt.Fprintf(out, "Wrote %s\n", p)
				}
				return nil
			}

			data, err := report.Render(rc.Report, format, renderer)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Report format: json, markdown or html (default from config)")
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Write all report formats to this directory")
	return cmd
}
