package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	apperrors "halifax-hub/internal/errors"
	"halifax-hub/internal/models"
)

// pinHeader is the column order pins are exported in. Import accepts
// any column order and matches headers case-insensitively.
var pinHeader = []string{
	"name", "category", "description", "address",
	"lat", "lon", "likes", "added_at",
}

// requiredPinColumns must all be present for an import to be accepted.
// likes and added_at are optional and default per row.
var requiredPinColumns = []string{
	"name", "category", "description", "address", "lat", "lon",
}

// WritePins writes pins as CSV, one row per pin plus a header row.
func WritePins(w io.Writer, pins []models.Pin) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(pinHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, p := range pins {
		row := []string{
			p.Name,
			p.Category,
			p.Description,
			p.Address,
			formatFloat(p.Lat),
			formatFloat(p.Lon),
			strconv.Itoa(p.Likes),
			p.AddedAt,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ReadPins parses an uploaded pins CSV. A missing required column or a
// structurally broken file rejects the whole upload; a bad individual
// value does not. Rows without a name are skipped and counted, values
// that fail to parse fall back to their defaults.
func ReadPins(r io.Reader, defaults models.Coordinates) ([]models.Pin, int, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, 0, apperrors.Validation("could not read CSV file", err)
	}
	if len(records) == 0 {
		return nil, 0, apperrors.Validation("CSV missing required columns.", nil)
	}

	index := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		index[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range requiredPinColumns {
		if _, ok := index[col]; !ok {
			return nil, 0, apperrors.Validation("CSV missing required columns.", nil)
		}
	}

	var pins []models.Pin
	skipped := 0
	for _, record := range records[1:] {
		name := strings.TrimSpace(field(record, index, "name"))
		if name == "" {
			skipped++
			continue
		}
		addedAt := strings.TrimSpace(field(record, index, "added_at"))
		if addedAt == "" {
			addedAt = time.Now().Format(models.AddedAtLayout)
		}
		pins = append(pins, models.Pin{
			Name:        name,
			Category:    models.NormalizeCategory(field(record, index, "category")),
			Description: strings.TrimSpace(field(record, index, "description")),
			Address:     strings.TrimSpace(field(record, index, "address")),
			Lat:         parseFloat(field(record, index, "lat"), defaults.Lat),
			Lon:         parseFloat(field(record, index, "lon"), defaults.Lon),
			Likes:       parseLikes(field(record, index, "likes")),
			AddedAt:     addedAt,
		})
	}
	return pins, skipped, nil
}

// careerHeader flattens idea cards for spreadsheets; list fields are
// joined with " | ".
var careerHeader = []string{
	"title", "why_fit", "starter_steps", "skills_to_learn",
	"resources", "related_roles", "salary_hint",
}

// WriteCareerIdeas writes idea cards as CSV, one row per idea.
func WriteCareerIdeas(w io.Writer, ideas []models.CareerIdea) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(careerHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, idea := range ideas {
		row := []string{
			idea.Title,
			idea.WhyFit,
			strings.Join(idea.StarterSteps, " | "),
			strings.Join(idea.SkillsToLearn, " | "),
			strings.Join(idea.LocalOrFreeResources, " | "),
			strings.Join(idea.RelatedRoles, " | "),
			idea.SalaryHint,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func field(record []string, index map[string]int, col string) string {
	i, ok := index[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseLikes(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
