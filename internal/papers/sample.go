package papers

// SamplePapers is the built-in corpus of AI-in-healthcare abstracts used when
// no corpus file is given.
var SamplePapers = []Paper{
	{
		Title: "Deep Learning in Medical Image Analysis: Recent Advances and Future Directions",
		Abstract: "This comprehensive review examines the application of deep learning techniques in medical image analysis. " +
			"Convolutional Neural Networks (CNNs) have revolutionized the field, achieving diagnostic accuracy comparable " +
			"to expert radiologists in multiple domains. Recent studies demonstrate that AI systems can detect diabetic " +
			"retinopathy with 95% sensitivity and 98% specificity. However, challenges remain in clinical integration, " +
			"including interpretability, regulatory approval, and workflow optimization. This paper synthesizes current " +
			"evidence and proposes future research directions for machine learning in diagnostic imaging.",
		Keywords: []string{"deep learning", "medical imaging", "CNN", "diagnostics", "healthcare AI"},
	},
	{
		Title: "Clinical Decision Support Systems: A Meta-Analysis of Effectiveness",
		Abstract: "Clinical Decision Support Systems (CDSS) powered by artificial intelligence are transforming healthcare delivery. " +
			"Our meta-analysis of 127 randomized controlled trials reveals that AI-augmented CDSS improve diagnostic accuracy " +
			"by 23% on average and reduce medical errors by 37%. Machine learning models trained on electronic health records " +
			"can predict patient deterioration 24-48 hours before clinical manifestation. Despite promising results, implementation " +
			"barriers include data privacy concerns, algorithm bias, and physician resistance to technology adoption. " +
			"Future work must address these challenges while maintaining patient safety and care quality.",
		Keywords: []string{"clinical decision support", "machine learning", "healthcare automation", "patient safety"},
	},
	{
		Title: "Natural Language Processing for Electronic Health Records: Applications and Challenges",
		Abstract: "Natural Language Processing (NLP) techniques are increasingly applied to extract structured information from " +
			"unstructured clinical notes. State-of-the-art transformer models like BERT and GPT achieve F1 scores above 0.90 " +
			"for named entity recognition of medical concepts. NLP systems can automatically identify adverse drug events, " +
			"extract treatment outcomes, and support clinical research. However, challenges persist including medical jargon " +
			"variability, abbreviation ambiguity, and the need for domain-specific training data. This review discusses current " +
			"NLP architectures, evaluation metrics, and future directions for clinical text mining.",
		Keywords: []string{"natural language processing", "electronic health records", "text mining", "BERT", "medical NLP"},
	},
}

// SampleCorpus returns the built-in corpus.
func SampleCorpus() *Corpus {
	c, err := NewCorpus(SamplePapers)
	if err != nil {
		panic(err)
	}
	return c
}
