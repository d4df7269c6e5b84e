package papers

// Paper is a single research paper as supplied by the caller.
type Paper struct {
	Title    string   `json:"title" yaml:"title"`
	Abstract string   `json:"abstract" yaml:"abstract"`
	Keywords []string `json:"keywords" yaml:"keywords"`
}

// ProcessedPaper is a Paper after text normalization.
// It is derived once and never modified afterward.
type ProcessedPaper struct {
	PaperID       int      `json:"paper_id"`
	Title         string   `json:"title"`
	Keywords      []string `json:"keywords"`
	RawText       string   `json:"raw_text"`
	CleanedText   string   `json:"cleaned_text"`
	Sentences     []string `json:"sentences"`
	Tokens        []string `json:"tokens"`
	TokenCount    int      `json:"token_count"`
	SentenceCount int      `json:"sentence_count"`
}
