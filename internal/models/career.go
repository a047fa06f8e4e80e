package models

// CareerIdea is one normalized suggestion card. Field names follow the
// JSON schema the model is asked to produce, so a well-formed response
// maps onto this struct directly.
type CareerIdea struct {
	Title                string   `json:"title"`
	WhyFit               string   `json:"why_fit"`
	StarterSteps         []string `json:"starter_steps"`
	SkillsToLearn        []string `json:"skills_to_learn"`
	LocalOrFreeResources []string `json:"local_or_free_resources"`
	RelatedRoles         []string `json:"related_roles"`
	SalaryHint           string   `json:"salary_hint"`
}

// Idea count bounds for a single generation request.
const (
	MinIdeaCount     = 3
	MaxIdeaCount     = 8
	DefaultIdeaCount = 5
)

// Option sets offered by the profile form.
var (
	Grades = []string{"9th", "10th", "11th", "12th", "Other"}

	PostSchoolPaths = []string{
		"4-year college",
		"2-year college",
		"Trade/Apprenticeship",
		"Go straight to work",
		"Undecided",
	}

	WorkStyles = []string{
		"Hands-on",
		"Creative",
		"People-facing",
		"Outdoors",
		"Tech-heavy",
		"Numbers/Analysis",
		"Helping others",
		"Entrepreneurial",
	}

	StudentValues = []string{
		"Good pay",
		"Job stability",
		"Flexible schedule",
		"Helping community",
		"Learning new things",
		"Creative freedom",
	}

	WorkLocations = []string{
		"Local (Halifax / Roanoke Rapids)",
		"North Carolina",
		"Remote / Anywhere",
		"Big city",
	}
)

// SalaryHint ties a career track to the rough entry-level bucket the
// model is told to quote.
type SalaryHint struct {
	Track string
	Hint  string
}

// SalaryHints holds the allowed salary buckets in prompt order.
var SalaryHints = []SalaryHint{
	{Track: "software", Hint: "$55k–$95k entry (US)"},
	{Track: "data", Hint: "$50k–$85k entry (US)"},
	{Track: "health", Hint: "$35k–$70k entry (US)"},
	{Track: "skilled", Hint: "$35k–$65k entry (US)"},
	{Track: "creative", Hint: "$30k–$60k entry (US)"},
	{Track: "business", Hint: "$40k–$70k entry (US)"},
	{Track: "public", Hint: "$35k–$60k entry (US)"},
}

// SalaryHintValues returns just the bucket strings, in prompt order.
func SalaryHintValues() []string {
	values := make([]string, 0, len(SalaryHints))
	for _, s := range SalaryHints {
		values = append(values, s.Hint)
	}
	return values
}
