package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"halifax-hub/internal/dtos"
	"halifax-hub/internal/services"
	"halifax-hub/internal/session"
)

type CareerHandler struct {
	CareerService *services.CareerService
}

// NewCareerHandler creates the handler with dependencies
func NewCareerHandler(cs *services.CareerService) *CareerHandler {
	return &CareerHandler{CareerService: cs}
}

// Options is the GET /careers/options endpoint, serving the profile
// form's choices.
func (h *CareerHandler) Options(c *gin.Context) {
	c.JSON(http.StatusOK, h.CareerService.Options())
}

// Generate is the POST /careers/generate endpoint. A reply the model
// botched still answers 200, with a warning and the raw text, so the
// UI can show something useful.
func (h *CareerHandler) Generate(c *gin.Context) {
	var req dtos.GenerateCareersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	resp, err := h.CareerService.Generate(c.Request.Context(), session.FromContext(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export is the GET /careers/export endpoint, answering a CSV
// download of the current idea cards.
func (h *CareerHandler) Export(c *gin.Context) {
	data, filename, err := h.CareerService.ExportCSV(session.FromContext(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
