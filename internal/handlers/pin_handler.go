package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"halifax-hub/internal/dtos"
	apperrors "halifax-hub/internal/errors"
	"halifax-hub/internal/models"
	"halifax-hub/internal/services"
	"halifax-hub/internal/session"
)

type PinHandler struct {
	PinService *services.PinService
}

// NewPinHandler creates the handler with dependencies
func NewPinHandler(p *services.PinService) *PinHandler {
	return &PinHandler{PinService: p}
}

// CreatePin is the POST /pins endpoint
func (h *PinHandler) CreatePin(c *gin.Context) {
	var req dtos.AddPinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	st := session.FromContext(c)
	pin, err := h.PinService.AddPin(c.Request.Context(), st, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toPinView(pin))
}

// ListPins is the GET /pins endpoint. ?q= is a free-text search over
// name and description, ?categories= a comma-separated allow list.
func (h *PinHandler) ListPins(c *gin.Context) {
	st := session.FromContext(c)

	pins := h.PinService.ListPins(st, c.Query("q"), splitCategories(c.Query("categories")))
	views := make([]dtos.PinView, 0, len(pins))
	for _, p := range pins {
		views = append(views, toPinView(p))
	}
	c.JSON(http.StatusOK, dtos.ListPinsResponse{Pins: views, Count: len(views)})
}

// LikePin is the POST /pins/like endpoint
func (h *PinHandler) LikePin(c *gin.Context) {
	var req dtos.LikePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	pin, err := h.PinService.Like(session.FromContext(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toPinView(pin))
}

// ExportPins is the GET /pins/export endpoint, answering a CSV
// download of everything in the session.
func (h *PinHandler) ExportPins(c *gin.Context) {
	data, err := h.PinService.ExportCSV(session.FromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="halifax_pins.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// ImportPins is the POST /pins/import endpoint, taking a multipart
// upload under the "file" field.
func (h *PinHandler) ImportPins(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperrors.Validation("a CSV file upload is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, apperrors.Validation("could not open the uploaded file", err))
		return
	}
	defer file.Close()

	result, err := h.PinService.ImportCSV(session.FromContext(c), file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// MapView is the GET /pins/map endpoint. ?center_default=true forces
// the Halifax center instead of the pin average.
func (h *PinHandler) MapView(c *gin.Context) {
	centerDefault := c.Query("center_default") == "true"
	c.JSON(http.StatusOK, h.PinService.MapView(session.FromContext(c), centerDefault))
}

// Categories is the GET /pins/categories endpoint
func (h *PinHandler) Categories(c *gin.Context) {
	views := make([]dtos.CategoryView, 0, len(models.Categories))
	for _, cat := range models.Categories {
		views = append(views, dtos.CategoryView{Name: cat, Color: models.CategoryColor(cat)})
	}
	c.JSON(http.StatusOK, dtos.CategoriesResponse{Categories: views})
}

func toPinView(p models.Pin) dtos.PinView {
	return dtos.PinView{Pin: p, Color: models.CategoryColor(p.Category)}
}

func splitCategories(raw string) []string {
	if raw == "" {
		return nil
	}
	return strings.Split(raw, ",")
}
