package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newChunksCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chunks",
		Short: "List the chunks of the corpus",
		Long:  `Normalizes and chunks the corpus and prints one row per chunk with its position and token count.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			rc, err := e.pipeline.Index(cmd.Context(), e.corpus)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CHUNK\tPAPER\tPOSITION\tSTART\tTOKENS\tTEXT")
			for _, c := range rc.Chunks {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n",
					c.ChunkID, c.PaperID, c.Position, c.Start, c.TokenCount, preview(c.Text, 50))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			stats := rc.KnowledgeBase.Stats()
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d chunks from %d papers, %d-dimensional vectors, %.1f%% sparse\n",
				stats.TotalEntries, stats.UniquePapers, stats.Dimension, stats.Sparsity*100)
			return nil
		},
	}
}
