package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/validator"
)

// ShareHandler exposes the institute share computation.
type ShareHandler struct {
	shareService *service.ShareService
}

// NewShareHandler creates a new ShareHandler.
func NewShareHandler(shareService *service.ShareService) *ShareHandler {
	return &ShareHandler{shareService: shareService}
}

// ListShares godoc
// GET /api/v1/shares
// Lists saved shares, newest first.
func (h *ShareHandler) ListShares(c *gin.Context) {
	shares, err := h.shareService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "shares", shares)
}

// ComputeShare godoc
// POST /api/v1/shares/compute
// Returns the share for a triple without saving it.
func (h *ShareHandler) ComputeShare(c *gin.Context) {
	var req model.Triple
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	share, err := h.shareService.ComputeInstituteShare(c.Request.Context(), req.InstituteID, req.ClassID, req.SectionID)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"share": share})
}

// SaveShare godoc
// POST /api/v1/shares
// Recomputes and saves the share with the given paid date.
func (h *ShareHandler) SaveShare(c *gin.Context) {
	var req model.SaveShareRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	share, err := h.shareService.SaveInstituteShare(c.Request.Context(), req.Triple, req.PaidDate)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"share": share})
}
