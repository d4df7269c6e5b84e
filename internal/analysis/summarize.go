package analysis

import "strings"

// Summary condenses one paper into key topics and summary points.
type Summary struct {
	PaperID        int       `json:"paper_id"`
	Title          string    `json:"title"`
	KeyTopics      []string  `json:"key_topics"`
	SummaryPoints  []string  `json:"summary_points"`
	AbstractLength int       `json:"abstract_length"`
	RelevanceScore float64   `json:"relevance_score"` // Mean similarity of the paper's relevant chunks
	TopChunk       *ChunkRef `json:"top_chunk"`       // nil when nothing was retrieved
}

// SummaryAggregate describes all summaries together.
type SummaryAggregate struct {
	AverageRelevance   float64 `json:"average_relevance"`
	UniqueTopics       int     `json:"unique_topics"`
	TotalSummaryPoints int     `json:"total_summary_points"`
}

// SummaryOutput is the result of summarizing every extracted paper.
type SummaryOutput struct {
	Agent            string           `json:"agent"`
	InputAgent       string           `json:"input_agent"`
	PapersSummarized int              `json:"papers_summarized"`
	Summaries        []Summary        `json:"summaries"`
	Aggregate        SummaryAggregate `json:"aggregate_insights"`
}

// Summarize builds a summary per extracted paper.
func Summarize(in *ReaderOutput, th Thresholds) *SummaryOutput {
	out := &SummaryOutput{
		Agent:            AgentSummarizer,
		InputAgent:       in.Agent,
		PapersSummarized: in.PapersProcessed,
	}

	var (
		relevances []float64
		topics     []string
		points     int
	)
	for _, p := range in.Papers {
		sims := make([]float64, len(p.RelevantChunks))
		for i, c := range p.RelevantChunks {
			sims[i] = c.Similarity
		}

		s := Summary{
			PaperID:        p.PaperID,
			Title:          p.Title,
			KeyTopics:      firstN(p.Keywords, th.KeyTopicCount),
			SummaryPoints:  SummaryPoints(p.Abstract, th),
			AbstractLength: p.AbstractLength,
			RelevanceScore: mean(sims),
		}
		if len(p.RelevantChunks) > 0 {
			top := p.RelevantChunks[0]
			s.TopChunk = &top
		}

		out.Summaries = append(out.Summaries, s)
		relevances = append(relevances, s.RelevanceScore)
		topics = append(topics, s.KeyTopics...)
		points += len(s.SummaryPoints)
	}

	out.Aggregate = SummaryAggregate{
		AverageRelevance:   round4(mean(relevances)),
		UniqueTopics:       len(dedupe(topics)),
		TotalSummaryPoints: points,
	}
	return out
}

// SummaryPoints splits an abstract on ". " and keeps the first sentences
// that are longer than th.SummaryMinWords words.
func SummaryPoints(abstract string, th Thresholds) []string {
	points := []string{}
	for _, s := range strings.Split(abstract, ". ") {
		s = strings.TrimSpace(s)
		if len(strings.Fields(s)) <= th.SummaryMinWords {
			continue
		}
		points = append(points, s)
		if len(points) == th.SummaryMaxPoints {
			break
		}
	}
	return points
}
