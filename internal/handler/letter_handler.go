package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/validator"
)

// LetterHandler serves the dispatch or receive register.
type LetterHandler struct {
	direction     model.LetterDirection
	letterService service.LetterService
}

// NewLetterHandler creates a LetterHandler for direction.
func NewLetterHandler(direction model.LetterDirection, letterService service.LetterService) *LetterHandler {
	return &LetterHandler{direction: direction, letterService: letterService}
}

// GET /api/v1/letters/{dispatch,receive}
func (h *LetterHandler) ListLetters(c *gin.Context) {
	letters, err := h.letterService.ListLetters(c.Request.Context(), h.direction)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "letters", letters)
}

// POST /api/v1/letters/{dispatch,receive}
func (h *LetterHandler) LogLetter(c *gin.Context) {
	var req model.LetterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	letter, err := h.letterService.LogLetter(c.Request.Context(), h.direction, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"letter": letter})
}
