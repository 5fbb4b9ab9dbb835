package patterns

// Category is one group of phrase patterns sharing a weight and a fixed
// confidence label. The label describes how reliably the category's phrases
// indicate machine writing, independent of any single document's score.
type Category struct {
	Name       string
	Confidence string
	Weight     float64
	Phrases    []string
}

// DefaultCatalog returns the built-in phrase catalog, ordered by descending
// weight. The catalog is read-only after construction; callers that need a
// different catalog pass their own via Options.
func DefaultCatalog() []Category {
	return []Category{
		{
			Name:       "dead_giveaways",
			Confidence: "Very High",
			Weight:     3.0,
			Phrases: []string{
				"delve into", "delving deeper", "delve deeper",
				"tapestry of", "rich tapestry",
				"a testament to", "stands as a testament",
				"in today's world", "in today's landscape", "in today's society",
				"navigating the complexities", "navigate the complex",
				"unlock the potential", "unlocking insights",
			},
		},
		{
			Name:       "high_probability",
			Confidence: "High",
			Weight:     2.0,
			Phrases: []string{
				"moreover", "furthermore", "additionally",
				"it's important to note that", "it's worth noting",
				"it's crucial to understand", "it's essential to",
				"while it's true that", "while it may seem",
				"on one hand", "on the other hand",
				"in conclusion", "to summarize", "in summary",
				"leverage", "utilize", "paramount", "plethora",
			},
		},
		{
			Name:       "moderate_indicators",
			Confidence: "Medium",
			Weight:     1.0,
			Phrases: []string{
				"however", "nevertheless", "nonetheless",
				"significant", "robust", "comprehensive",
				"various", "numerous", "multifaceted",
				"it should be noted", "bear in mind",
				"synergy", "holistic", "paradigm",
			},
		},
		{
			Name:       "structural_patterns",
			Confidence: "Low",
			Weight:     0.5,
			Phrases: []string{
				"firstly", "secondly", "thirdly", "lastly",
				"in essence", "essentially", "fundamentally",
				"broadly speaking", "generally speaking",
				"for instance", "for example",
			},
		},
	}
}
