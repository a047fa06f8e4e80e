package services

import (
	"bytes"
	"context"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"halifax-hub/internal/config"
	"halifax-hub/internal/dtos"
	apperrors "halifax-hub/internal/errors"
	"halifax-hub/internal/models"
	"halifax-hub/internal/session"
	"halifax-hub/internal/storage"
)

const mapZoom = 12

type PinService struct {
	geocoder Geocoder
	cfg      *config.Config
	logger   *zap.Logger
}

func NewPinService(geocoder Geocoder, cfg *config.Config, logger *zap.Logger) *PinService {
	return &PinService{
		geocoder: geocoder,
		cfg:      cfg,
		logger:   logger,
	}
}

// AddPin validates the request, optionally geocodes the address and
// appends the new pin to the session. Geocoding is best effort: no
// match or a lookup failure keeps the manual coordinates.
func (s *PinService) AddPin(ctx context.Context, st *session.State, req *dtos.AddPinRequest) (models.Pin, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Pin{}, apperrors.Validation("Please provide a place name.", nil)
	}

	lat := s.cfg.DefaultLat
	lon := s.cfg.DefaultLon
	if req.Lat != nil {
		lat = *req.Lat
	}
	if req.Lon != nil {
		lon = *req.Lon
	}

	address := strings.TrimSpace(req.Address)
	if wantsGeocode(req) && address != "" {
		// The bias suffix keeps ambiguous queries near Halifax.
		loc, err := s.geocoder.Geocode(ctx, address+", "+s.cfg.GeocodeBias)
		if err != nil {
			s.logger.Warn("geocoding failed, keeping manual coordinates", zap.Error(err))
		} else if loc != nil {
			lat, lon = loc.Lat, loc.Lon
		}
	}

	pin := models.Pin{
		Name:        name,
		Category:    models.NormalizeCategory(req.Category),
		Description: strings.TrimSpace(req.Description),
		Address:     address,
		Lat:         lat,
		Lon:         lon,
		Likes:       0,
		AddedAt:     time.Now().Format(models.AddedAtLayout),
	}

	st.Lock()
	st.Pins = append(st.Pins, pin)
	st.Unlock()

	s.logger.Info("pin added",
		zap.String("name", pin.Name),
		zap.String("category", pin.Category))
	return pin, nil
}

func wantsGeocode(req *dtos.AddPinRequest) bool {
	return req.Geocode == nil || *req.Geocode
}

// ListPins returns pins matching the filters in insertion order. Both
// filters are optional: no categories means every category, an empty
// query matches everything. The query is a case-insensitive substring
// match on name or description.
func (s *PinService) ListPins(st *session.State, query string, categories []string) []models.Pin {
	var allowed map[string]bool
	for _, c := range categories {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if allowed == nil {
			allowed = make(map[string]bool, len(categories))
		}
		allowed[c] = true
	}
	q := strings.ToLower(strings.TrimSpace(query))

	st.Lock()
	defer st.Unlock()
	out := make([]models.Pin, 0, len(st.Pins))
	for _, p := range st.Pins {
		if allowed != nil && !allowed[p.Category] {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Like increments the like count of the first pin matching the
// name/category/lat/lon tuple. Duplicates are separate rows and only
// the first match takes the like.
func (s *PinService) Like(st *session.State, req *dtos.LikePinRequest) (models.Pin, error) {
	st.Lock()
	defer st.Unlock()
	for i := range st.Pins {
		p := &st.Pins[i]
		if p.Name == req.Name && p.Category == req.Category &&
			p.Lat == req.Lat && p.Lon == req.Lon {
			p.Likes++
			return *p, nil
		}
	}
	return models.Pin{}, apperrors.NotFound("no pin matches that name, category and location", nil)
}

// MapView reports where the map should center: the average of all pin
// positions, or the Halifax center when forced or when the session has
// no pins yet.
func (s *PinService) MapView(st *session.State, centerDefault bool) dtos.MapViewResponse {
	st.Lock()
	defer st.Unlock()

	view := dtos.MapViewResponse{
		Latitude:  s.cfg.DefaultLat,
		Longitude: s.cfg.DefaultLon,
		Zoom:      mapZoom,
		Pins:      len(st.Pins),
	}
	if centerDefault || len(st.Pins) == 0 {
		return view
	}

	var latSum, lonSum float64
	for _, p := range st.Pins {
		latSum += p.Lat
		lonSum += p.Lon
	}
	view.Latitude = latSum / float64(len(st.Pins))
	view.Longitude = lonSum / float64(len(st.Pins))
	return view
}

// ExportCSV renders the session's pins for download.
func (s *PinService) ExportCSV(st *session.State) ([]byte, error) {
	st.Lock()
	pins := make([]models.Pin, len(st.Pins))
	copy(pins, st.Pins)
	st.Unlock()

	var buf bytes.Buffer
	if err := storage.WritePins(&buf, pins); err != nil {
		return nil, apperrors.Internal("failed to render pins CSV", err)
	}
	return buf.Bytes(), nil
}

// ImportCSV appends every importable row of an uploaded CSV to the
// session. Existing pins are never touched, an import only adds.
func (s *PinService) ImportCSV(st *session.State, r io.Reader) (*dtos.ImportPinsResponse, error) {
	pins, skipped, err := storage.ReadPins(r, models.Coordinates{
		Lat: s.cfg.DefaultLat,
		Lon: s.cfg.DefaultLon,
	})
	if err != nil {
		return nil, err
	}

	st.Lock()
	st.Pins = append(st.Pins, pins...)
	total := len(st.Pins)
	st.Unlock()

	s.logger.Info("pins imported from CSV",
		zap.Int("imported", len(pins)),
		zap.Int("skipped", skipped))
	return &dtos.ImportPinsResponse{
		Imported: len(pins),
		Skipped:  skipped,
		Total:    total,
	}, nil
}
