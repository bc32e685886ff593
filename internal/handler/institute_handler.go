package handler

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/validator"
)

// agreementField is the multipart field carrying the agreement PDF.
const agreementField = "agreement"

// InstituteHandler handles partner institute registration.
type InstituteHandler struct {
	instituteService *service.InstituteService
}

// NewInstituteHandler creates a new InstituteHandler.
func NewInstituteHandler(instituteService *service.InstituteService) *InstituteHandler {
	return &InstituteHandler{instituteService: instituteService}
}

// ListInstitutes godoc
// GET /api/v1/institutes
func (h *InstituteHandler) ListInstitutes(c *gin.Context) {
	institutes, err := h.instituteService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "institutes", institutes)
}

// GetInstitute godoc
// GET /api/v1/institutes/:id
func (h *InstituteHandler) GetInstitute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	inst, err := h.instituteService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"institute": inst})
}

// CreateInstitute godoc
// POST /api/v1/institutes
// Accepts JSON, or multipart/form-data with an optional "agreement" PDF.
func (h *InstituteHandler) CreateInstitute(c *gin.Context) {
	var req model.InstituteRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	upload, closer, ok := agreementUpload(c)
	if !ok {
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	result, err := h.instituteService.Create(c.Request.Context(), &req, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusCreated, gin.H{"institute": result.Institute}, result.Warnings)
}

// UpdateInstitute godoc
// PUT /api/v1/institutes/:id
// A new "agreement" file replaces the stored document.
func (h *InstituteHandler) UpdateInstitute(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.InstituteRequest
	if fields := validator.BindForm(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	upload, closer, ok := agreementUpload(c)
	if !ok {
		return
	}
	if closer != nil {
		defer closer.Close()
	}

	result, err := h.instituteService.Update(c.Request.Context(), id, &req, upload)
	if err != nil {
		respondError(c, err)
		return
	}
	response.SuccessWithWarnings(c, http.StatusOK, gin.H{"institute": result.Institute}, result.Warnings)
}

// agreementUpload opens the optional agreement file of a multipart request.
func agreementUpload(c *gin.Context) (*service.Upload, multipart.File, bool) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		return nil, nil, true
	}

	file, header, err := c.Request.FormFile(agreementField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil, true
		}
		response.FailWithFields(c, http.StatusBadRequest, response.ErrInvalidPayload, map[string]string{agreementField: err.Error()})
		return nil, nil, false
	}
	return &service.Upload{FileName: header.Filename, Content: file}, file, true
}
