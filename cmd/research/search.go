package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newSearchCmd(g *globalOptions) *cobra.Command {
	var (
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Builds the knowledge base from the corpus and ranks its chunks by
cosine similarity to the query.

Examples:
  research search "medical imaging"
  research search --limit 10 "clinical decision support"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd)
			if err != nil {
				return err
			}
			if limit == 0 {
				limit = e.cfg.Search.TopK
			}

			rc, err := e.pipeline.Index(cmd.Context(), e.corpus)
			if err != nil {
				return fmt.Errorf("build index: %w", err)
			}
			results, err := rc.KnowledgeBase.Search(args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(results)
			}

			if len(results) == 0 {
				fmt.Fprintln(out, "No results.")
				return nil
			}
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "RANK\tSIMILARITY\tCHUNK\tPAPER\tTEXT")
			for _, r := range results {
				fmt.Fprintf(w, "%d\t%.4f\t%s\t%s\t%s\n",
					r.Rank, r.Similarity, r.Entry.ChunkID, preview(r.Entry.PaperTitle, 40), preview(r.Entry.Text, 60))
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Maximum results to return (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print results as JSON")
	return cmd
}
