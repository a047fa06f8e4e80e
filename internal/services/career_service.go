package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"

	"go.uber.org/zap"

	"halifax-hub/internal/dtos"
	apperrors "halifax-hub/internal/errors"
	"halifax-hub/internal/models"
	"halifax-hub/internal/parser"
	"halifax-hub/internal/session"
	"halifax-hub/internal/storage"
)

const parseWarning = "Couldn't parse AI response as JSON. Showing raw text below."

const careerSystemPrompt = "You are a practical, upbeat career advisor for US high school students in Halifax, North Carolina. " +
	"Give concrete, encouraging suggestions with next steps they can do within weeks, not years. " +
	"Be specific and concise. Use plain English. Avoid long paragraphs."

var careerUserPrompt = template.Must(template.New("career_user_prompt").Parse(`Student profile:
- Grade: {{.Grade}}
- Post-school preference: {{.PostSchool}}
- Hobbies: {{.Hobbies}}
- Favorite subjects: {{.Subjects}}
- Strengths: {{.Strengths}}
- Work style: {{.WorkStyle}}
- Values: {{.Values}}
- Location: {{.Location}}

Return STRICT JSON with this schema:
{
  "ideas": [
    {
      "title": "str",
      "why_fit": "str",
      "starter_steps": ["str", "str", "str"],
      "skills_to_learn": ["str", "str", "str"],
      "local_or_free_resources": ["str", "str"],
      "related_roles": ["str", "str"],
      "salary_hint": "str"
    }
  ]
}

Rules:
- ideas length = {{.NumIdeas}}.
- Choose roles that match preferences (college vs trade vs work).
- Include at least one idea doable without a 4-year degree.
- Use Halifax/NC/online resources where possible.
- salary_hint: use one of these buckets (approx): {{.SalaryBuckets}}.
`))

type promptData struct {
	Grade         string
	PostSchool    string
	Hobbies       string
	Subjects      string
	Strengths     string
	WorkStyle     string
	Values        string
	Location      string
	NumIdeas      int
	SalaryBuckets string
}

type CareerService struct {
	model  CareerModel
	logger *zap.Logger
}

func NewCareerService(model CareerModel, logger *zap.Logger) *CareerService {
	return &CareerService{
		model:  model,
		logger: logger,
	}
}

func clampIdeaCount(n int) int {
	if n == 0 {
		return models.DefaultIdeaCount
	}
	if n < models.MinIdeaCount {
		return models.MinIdeaCount
	}
	if n > models.MaxIdeaCount {
		return models.MaxIdeaCount
	}
	return n
}

func buildUserPrompt(req *dtos.GenerateCareersRequest) (string, error) {
	data := promptData{
		Grade:         req.Grade,
		PostSchool:    req.PostSchool,
		Hobbies:       req.Hobbies,
		Subjects:      req.Subjects,
		Strengths:     req.Strengths,
		WorkStyle:     strings.Join(req.WorkStyle, ", "),
		Values:        strings.Join(req.Values, ", "),
		Location:      req.Location,
		NumIdeas:      clampIdeaCount(req.NumIdeas),
		SalaryBuckets: strings.Join(models.SalaryHintValues(), ", "),
	}

	var buf bytes.Buffer
	if err := careerUserPrompt.Execute(&buf, data); err != nil {
		return "", apperrors.Internal("failed to render career prompt", err)
	}
	return buf.String(), nil
}

// Generate asks the model for idea cards and replaces the session's
// cards wholesale on success. A reply that parses but holds no ideas
// keeps the previous cards. A reply that does not parse at all also
// keeps them and hands the raw text back with a warning instead of
// failing the request.
func (s *CareerService) Generate(ctx context.Context, st *session.State, req *dtos.GenerateCareersRequest) (*dtos.GenerateCareersResponse, error) {
	userPrompt, err := buildUserPrompt(req)
	if err != nil {
		return nil, err
	}

	raw, err := s.model.Complete(ctx, careerSystemPrompt, userPrompt)
	if err != nil {
		return nil, err
	}

	ideas, err := parser.Normalize(raw)
	if err != nil {
		s.logger.Warn("model reply did not parse as JSON",
			zap.Int("raw_length", len(raw)))
		st.Lock()
		st.RawResponse = raw
		prior := append([]models.CareerIdea(nil), st.Ideas...)
		st.Unlock()
		return &dtos.GenerateCareersResponse{
			Ideas:   prior,
			Count:   len(prior),
			Warning: parseWarning,
			Raw:     raw,
		}, nil
	}

	st.Lock()
	st.RawResponse = raw
	if len(ideas) > 0 {
		st.Ideas = ideas
	}
	current := append([]models.CareerIdea(nil), st.Ideas...)
	st.Unlock()

	s.logger.Info("career ideas generated", zap.Int("ideas", len(ideas)))
	return &dtos.GenerateCareersResponse{
		Ideas: current,
		Count: len(current),
	}, nil
}

// ExportCSV renders the session's current idea cards for download and
// names the file after the moment of export.
func (s *CareerService) ExportCSV(st *session.State) ([]byte, string, error) {
	st.Lock()
	ideas := append([]models.CareerIdea(nil), st.Ideas...)
	st.Unlock()

	if len(ideas) == 0 {
		return nil, "", apperrors.Validation("Generate ideas first, then you can download them as a CSV.", nil)
	}

	var buf bytes.Buffer
	if err := storage.WriteCareerIdeas(&buf, ideas); err != nil {
		return nil, "", apperrors.Internal("failed to render ideas CSV", err)
	}

	filename := fmt.Sprintf("career_ideas_%s.csv", time.Now().Format("20060102_1504"))
	return buf.Bytes(), filename, nil
}

// Options reports the profile form's option sets so the UI and server
// never drift apart.
func (s *CareerService) Options() *dtos.CareerOptionsResponse {
	return &dtos.CareerOptionsResponse{
		Grades:          models.Grades,
		PostSchoolPaths: models.PostSchoolPaths,
		WorkStyles:      models.WorkStyles,
		Values:          models.StudentValues,
		Locations:       models.WorkLocations,
		SalaryBuckets:   models.SalaryHintValues(),
		MinIdeas:        models.MinIdeaCount,
		MaxIdeas:        models.MaxIdeaCount,
		DefaultIdeas:    models.DefaultIdeaCount,
	}
}
