package analysis

// ContributionType classifies what kind of work a paper reports.
type ContributionType string

const (
	ContributionMetaStudy ContributionType = "Meta-Study/Review"
	ContributionNovel     ContributionType = "Novel Method/Innovation"
	ContributionApplied   ContributionType = "Applied Research"
	ContributionEmpirical ContributionType = "Empirical Study"
)

// Maturity grades how ready a paper is to be cited.
type Maturity string

const (
	MaturityHigh   Maturity = "High - Ready for Citation"
	MaturityMedium Maturity = "Medium - Needs Context"
	MaturityLow    Maturity = "Low - Further Validation Needed"
)

type contributionRule struct {
	kind      ContributionType
	terms     []string
	reasoning string
}

// contributionRules are matched against the lowercased title, first hit wins.
var contributionRules = []contributionRule{
	{ContributionMetaStudy, []string{"meta-analysis"}, "Meta-analysis indicates comprehensive literature review and synthesis"},
	{ContributionNovel, []string{"novel", "new", "introducing"}, "Language suggests introduction of new methodology or approach"},
	{ContributionApplied, []string{"application", "implementing", "clinical"}, "Focus on practical application in real-world settings"},
}

const empiricalReasoning = "Empirical research advancing understanding in specific domain"

type implication struct {
	implication string
	application string
}

var topicImplications = map[string]implication{
	"deep learning": {
		"Foundation for advanced pattern recognition and automated feature extraction",
		"Applicable to complex medical image analysis tasks",
	},
	"machine learning": {
		"Data-driven modeling for predictive and diagnostic systems",
		"Enables automated decision support with continuous learning",
	},
	"clinical decision support": {
		"Direct patient care enhancement through evidence-based recommendations",
		"Measurable impact on clinical outcomes and treatment efficacy",
	},
	"natural language processing": {
		"Unstructured clinical data becomes analyzable and actionable",
		"Extracts insights from physician notes, reports, and literature",
	},
	"medical imaging": {
		"Computer vision techniques enhance diagnostic accuracy",
		"Reduces radiologist workload while improving detection rates",
	},
	"electronic health records": {
		"Structured and unstructured EHR data integration",
		"Comprehensive patient profiles for personalized medicine",
	},
}

var (
	methodTopics      = []string{"deep learning", "machine learning", "CNN"}
	applicationTopics = []string{"clinical decision support", "medical imaging", "electronic health records"}
)

// expectedTopics is the coverage checklist for the research area.
var expectedTopics = []string{
	"deep learning", "machine learning", "natural language processing",
	"clinical decision support", "medical imaging", "electronic health records",
	"predictive modeling", "patient outcomes", "data privacy", "model interpretability",
	"real-time systems", "regulatory compliance", "clinical validation",
	"transfer learning", "federated learning",
}
