package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as a GitHub-flavored Markdown document.
func Markdown(r *Report) []byte {
	var b strings.Builder

	topic := r.Metadata.Research.Topic
	if topic == "" {
		topic = "Research Corpus"
	}
	fmt.Fprintf(&b, "# Research Report: %s\n\n", topic)
	fmt.Fprintf(&b, "Generated %s · run `%s` · %d papers\n\n", r.Metadata.GenerationDate, r.Metadata.RunID, r.Metadata.TotalPapers)

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b, "%s.\n\n", r.ExecutiveSummary.Overview)
	writeList(&b, r.ExecutiveSummary.KeyFindings)
	fmt.Fprintf(&b, "_%s_\n\n", r.ExecutiveSummary.Methodology)

	writeResearch(&b, r)
	writePapers(&b, r.PaperReports)
	writeSynthesis(&b, r.Synthesis)

	b.WriteString("## Knowledge Base\n\n")
	kb := r.Metadata.KnowledgeBase
	b.WriteString("| Entries | Papers | Dimension | Avg tokens | Avg norm | Sparsity |\n")
	b.WriteString("|---|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %.1f | %.4f | %.1f%% |\n\n",
		kb.TotalEntries, kb.UniquePapers, kb.Dimension, kb.AvgTokenCount, kb.AvgNorm, kb.Sparsity*100)

	b.WriteString("## Pipeline\n\n")
	for i, agent := range r.Metadata.AgentPipeline {
		fmt.Fprintf(&b, "%d. %s\n", i+1, agent)
	}
	b.WriteString("\n")

	return []byte(b.String())
}

func writeResearch(b *strings.Builder, r *Report) {
	rc := r.Metadata.Research
	if rc.Topic == "" && len(rc.Keywords) == 0 && len(rc.Questions) == 0 {
		return
	}

	b.WriteString("## Research Configuration\n\n")
	if len(rc.Keywords) > 0 {
		fmt.Fprintf(b, "**Keywords:** %s\n\n", strings.Join(rc.Keywords, ", "))
	}
	if len(rc.Questions) > 0 {
		b.WriteString("**Questions:**\n\n")
		for i, q := range rc.Questions {
			fmt.Fprintf(b, "%d. %s\n", i+1, q)
		}
		b.WriteString("\n")
	}
}

func writePapers(b *strings.Builder, reports []PaperReport) {
	b.WriteString("## Papers\n\n")
	if len(reports) == 0 {
		b.WriteString("No papers analyzed.\n\n")
		return
	}

	for _, p := range reports {
		fmt.Fprintf(b, "### %d. %s\n\n", p.PaperID, p.Title)

		q := p.QualityMetrics
		b.WriteString("| Status | Relevance | Confidence | Topic overlap | Contribution | Maturity |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		fmt.Fprintf(b, "| %s | %.4f | %.4f | %.0f%% | %s | %s |\n\n",
			p.Status, p.RelevanceScore, q.Confidence, q.TopicOverlap*100, p.ContributionType, p.MaturityLevel)

		if len(p.KeyTopics) > 0 {
			fmt.Fprintf(b, "**Key topics:** %s\n\n", strings.Join(p.KeyTopics, ", "))
		}
		if len(p.SummaryPoints) > 0 {
			b.WriteString("**Summary**\n\n")
			writeList(b, p.SummaryPoints)
		}
		if len(p.Insights) > 0 {
			b.WriteString("**Insights**\n\n")
			writeList(b, p.Insights)
		}
		if len(p.ResearchImplications) > 0 {
			b.WriteString("**Implications**\n\n")
			writeList(b, p.ResearchImplications)
		}
		if q.HallucinationFlags > 0 || q.InconsistencyFlags > 0 {
			fmt.Fprintf(b, "> %d hallucination flag(s), %d inconsistency flag(s)\n\n", q.HallucinationFlags, q.InconsistencyFlags)
		}
	}
}

func writeSynthesis(b *strings.Builder, s Synthesis) {
	b.WriteString("## Synthesis\n\n")

	if len(s.CrossCuttingThemes) > 0 {
		b.WriteString("### Themes\n\n")
		b.WriteString("| Topic | Papers |\n|---|---|\n")
		for _, tc := range s.CrossCuttingThemes {
			fmt.Fprintf(b, "| %s | %d |\n", escapeCell(tc.Topic), tc.Count)
		}
		b.WriteString("\n")
	}

	if len(s.Trends) > 0 {
		b.WriteString("### Trends\n\n")
		for _, t := range s.Trends {
			fmt.Fprintf(b, "- **%s**: %s (%s). %s\n", t.Trend, t.Description, t.Evidence, t.Implication)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Research Gaps\n\n")
	fmt.Fprintf(b, "Coverage of expected topics: %.1f%%\n\n", s.CoverageRate*100)
	for _, g := range s.ResearchGaps {
		fmt.Fprintf(b, "- **%s** (%s): %s. %s\n", g.GapType, g.Severity, g.Description, g.Recommendation)
	}
	if len(s.ResearchGaps) > 0 {
		b.WriteString("\n")
	}

	if len(s.KeyComparisons) > 0 {
		b.WriteString("### Comparative Findings\n\n")
		for _, c := range s.KeyComparisons {
			fmt.Fprintf(b, "- **%s**: %s. %s\n", c.Finding, c.Description, c.Implication)
		}
		b.WriteString("\n")
	}

	if len(s.FutureDirections) > 0 {
		b.WriteString("### Future Research Directions\n\n")
		for i, d := range s.FutureDirections {
			fmt.Fprintf(b, "%d. **%s** [%s]: %s\n", i+1, d.Direction, d.Priority, d.Description)
		}
		b.WriteString("\n")
	}
}

func writeList(b *strings.Builder, items []string) {
	for _, it := range items {
		fmt.Fprintf(b, "- %s\n", it)
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
