package parser

import (
	"encoding/json"
	"strings"

	apperrors "halifax-hub/internal/errors"
	"halifax-hub/internal/models"
)

// Normalize converts raw model output into career idea cards. Models
// routinely wrap their JSON in markdown fences or chatty prose, so the
// text goes through up to three attempts before giving up:
//
//  1. strip a leading/trailing ``` fence if present
//  2. parse the whole text as a JSON object and read its "ideas" array
//  3. parse the slice between the first "{" and the last "}"
//
// Each recovered item is defaulted field by field, so one missing or
// wrong-typed field never drops the item. Unparseable input returns a
// MALFORMED_RESPONSE error and no ideas.
func Normalize(raw string) ([]models.CareerIdea, error) {
	txt := stripFence(strings.TrimSpace(raw))

	if ideas, ok := decodeIdeas(txt); ok {
		return ideas, nil
	}

	start := strings.Index(txt, "{")
	end := strings.LastIndex(txt, "}")
	if start != -1 && end > start {
		if ideas, ok := decodeIdeas(txt[start : end+1]); ok {
			return ideas, nil
		}
	}

	return nil, apperrors.MalformedResponse("response is not parseable as JSON", nil)
}

// stripFence removes a markdown code fence around txt. The opening
// line is dropped whole since it may carry a language tag.
func stripFence(txt string) string {
	if !strings.HasPrefix(txt, "```") {
		return txt
	}
	i := strings.Index(txt, "\n")
	if i == -1 {
		return ""
	}
	txt = txt[i+1:]
	if strings.HasSuffix(txt, "```") {
		if j := strings.LastIndex(txt, "\n"); j != -1 {
			txt = txt[:j]
		}
	}
	return txt
}

func decodeIdeas(txt string) ([]models.CareerIdea, bool) {
	var payload struct {
		Ideas json.RawMessage `json:"ideas"`
	}
	if err := json.Unmarshal([]byte(txt), &payload); err != nil {
		return nil, false
	}

	// A parsed object without an ideas array is an empty result, not
	// a parse failure.
	if len(payload.Ideas) == 0 {
		return []models.CareerIdea{}, true
	}
	var items []json.RawMessage
	if err := json.Unmarshal(payload.Ideas, &items); err != nil {
		return []models.CareerIdea{}, true
	}

	ideas := make([]models.CareerIdea, 0, len(items))
	for _, item := range items {
		ideas = append(ideas, normalizeItem(item))
	}
	return ideas, true
}

func normalizeItem(raw json.RawMessage) models.CareerIdea {
	idea := models.CareerIdea{
		StarterSteps:         []string{},
		SkillsToLearn:        []string{},
		LocalOrFreeResources: []string{},
		RelatedRoles:         []string{},
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return idea
	}

	idea.Title = stringField(fields, "title")
	idea.WhyFit = stringField(fields, "why_fit")
	idea.StarterSteps = listField(fields, "starter_steps")
	idea.SkillsToLearn = listField(fields, "skills_to_learn")
	idea.LocalOrFreeResources = listField(fields, "local_or_free_resources")
	idea.RelatedRoles = listField(fields, "related_roles")
	idea.SalaryHint = stringField(fields, "salary_hint")
	return idea
}

func stringField(fields map[string]json.RawMessage, key string) string {
	raw, ok := fields[key]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

func listField(fields map[string]json.RawMessage, key string) []string {
	out := []string{}
	raw, ok := fields[key]
	if !ok {
		return out
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return out
	}
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err != nil {
			continue
		}
		out = append(out, s)
	}
	return out
}
