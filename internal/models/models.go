package models

import (
	"encoding/json"
	"strings"
)

// AddedAtLayout is the wall-clock format stored on every pin.
const AddedAtLayout = "2006-01-02 15:04:05"

// Pin is one community place marker. Pins live only in the owning
// session and are never written to disk by the server.
type Pin struct {
	Name        string  `json:"name"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Address     string  `json:"address"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Likes       int     `json:"likes"`
	AddedAt     string  `json:"added_at"`
}

// Coordinates is a bare lat/lon pair, used for map centering and as the
// cached value for geocoding lookups.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) MarshalBinary() ([]byte, error) {
	return json.Marshal(c)
}

func (c *Coordinates) UnmarshalBinary(data []byte) error {
	return json.Unmarshal(data, c)
}

const CategoryOther = "Other"

// Categories is the fixed set a pin can belong to, in display order.
var Categories = []string{
	"Food",
	"Sports",
	"Study Spot",
	"Hangout",
	"Nature/Outdoors",
	"Volunteering",
	CategoryOther,
}

// CategoryColors maps each category to its RGB marker color.
var CategoryColors = map[string][3]int{
	"Food":            {255, 99, 132},
	"Sports":          {54, 162, 235},
	"Study Spot":      {255, 206, 86},
	"Hangout":         {75, 192, 192},
	"Nature/Outdoors": {153, 102, 255},
	"Volunteering":    {255, 159, 64},
	CategoryOther:     {200, 200, 200},
}

// NormalizeCategory maps free-form input onto the fixed category set.
// Matching ignores case and surrounding whitespace; anything that
// doesn't match falls back to Other.
func NormalizeCategory(category string) string {
	trimmed := strings.TrimSpace(category)
	for _, c := range Categories {
		if strings.EqualFold(c, trimmed) {
			return c
		}
	}
	return CategoryOther
}

// CategoryColor returns the marker color for a category, grey for
// anything outside the fixed set.
func CategoryColor(category string) [3]int {
	if color, ok := CategoryColors[category]; ok {
		return color
	}
	return CategoryColors[CategoryOther]
}
