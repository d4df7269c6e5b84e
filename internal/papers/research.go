package papers

// ResearchConfig describes the research question the corpus is analyzed for.
type ResearchConfig struct {
	Topic     string   `json:"topic" yaml:"topic"`
	Keywords  []string `json:"keywords" yaml:"keywords"`
	Questions []string `json:"questions" yaml:"questions"`
}

// DefaultResearchConfig returns the research setup matching SamplePapers.
func DefaultResearchConfig() ResearchConfig {
	return ResearchConfig{
		Topic: "artificial intelligence in healthcare",
		Keywords: []string{
			"machine learning diagnostics",
			"AI medical imaging",
			"clinical decision support systems",
			"healthcare automation",
		},
		Questions: []string{
			"What are the current applications of AI in medical diagnostics?",
			"How accurate are AI systems compared to human practitioners?",
			"What are the main challenges in implementing AI in healthcare settings?",
		},
	}
}
