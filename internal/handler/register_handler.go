package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/validator"
)

// RegisterHandler serves one money register. The router mounts one
// instance for income and one for expense.
type RegisterHandler struct {
	kind            model.RegisterKind
	registerService service.RegisterService
}

// NewRegisterHandler creates a RegisterHandler for kind.
func NewRegisterHandler(kind model.RegisterKind, registerService service.RegisterService) *RegisterHandler {
	return &RegisterHandler{kind: kind, registerService: registerService}
}

// ListEntries godoc
// GET /api/v1/registers/{income,expense}
func (h *RegisterHandler) ListEntries(c *gin.Context) {
	entries, err := h.registerService.ListEntries(c.Request.Context(), h.kind)
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "entries", entries)
}

// RecordEntry godoc
// POST /api/v1/registers/{income,expense}
func (h *RegisterHandler) RecordEntry(c *gin.Context) {
	var req model.RegisterRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	entry, err := h.registerService.RecordEntry(c.Request.Context(), h.kind, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"entry": entry})
}
