package dtos

import "halifax-hub/internal/models"

// GenerateCareersRequest is the student profile form. Every field is
// optional, an empty profile still produces generic suggestions.
type GenerateCareersRequest struct {
	Grade      string   `json:"grade"`
	PostSchool string   `json:"post_school"`
	Hobbies    string   `json:"hobbies"`
	Subjects   string   `json:"subjects"`
	Strengths  string   `json:"strengths"`
	WorkStyle  []string `json:"work_style"`
	Values     []string `json:"values"`
	Location   string   `json:"location"`
	NumIdeas   int      `json:"num_ideas"` // Clamped to [3,8], 0 means 5
}

type GenerateCareersResponse struct {
	Ideas []models.CareerIdea `json:"ideas"`
	Count int                 `json:"count"`

	// Set only when the model reply could not be parsed. Ideas then
	// holds whatever the session had before.
	Warning string `json:"warning,omitempty"`
	Raw     string `json:"raw,omitempty"`
}

type CareerOptionsResponse struct {
	Grades          []string `json:"grades"`
	PostSchoolPaths []string `json:"post_school_paths"`
	WorkStyles      []string `json:"work_styles"`
	Values          []string `json:"values"`
	Locations       []string `json:"locations"`
	SalaryBuckets   []string `json:"salary_buckets"`
	MinIdeas        int      `json:"min_ideas"`
	MaxIdeas        int      `json:"max_ideas"`
	DefaultIdeas    int      `json:"default_ideas"`
}
