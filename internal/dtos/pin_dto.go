package dtos

import "halifax-hub/internal/models"

type AddPinRequest struct {
	Name     string `json:"name" binding:"required"`
	Category string `json:"category"`

	// Optional Fields
	Description string   `json:"description"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`     // Defaults to the Halifax center if omitted
	Lon         *float64 `json:"lon"`     // Defaults to the Halifax center if omitted
	Geocode     *bool    `json:"geocode"` // Defaults to true if omitted
}

// LikePinRequest identifies a pin by the same tuple the map UI knows
// about it. There is no pin ID, matching is by value.
type LikePinRequest struct {
	Name     string  `json:"name" binding:"required"`
	Category string  `json:"category" binding:"required"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
}

type PinView struct {
	models.Pin
	Color [3]int `json:"color"`
}

type ListPinsResponse struct {
	Pins  []PinView `json:"pins"`
	Count int       `json:"count"`
}

type ImportPinsResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Total    int `json:"total"`
}

type MapViewResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Zoom      int     `json:"zoom"`
	Pins      int     `json:"pins"`
}

type CategoryView struct {
	Name  string `json:"name"`
	Color [3]int `json:"color"`
}

type CategoriesResponse struct {
	Categories []CategoryView `json:"categories"`
}
