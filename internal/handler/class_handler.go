package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/validator"
)

// ClassHandler handles class management and the per-class section lists.
type ClassHandler struct {
	classService service.ClassService
	eligibility  *service.EligibilityService
}

// NewClassHandler creates a new ClassHandler.
func NewClassHandler(classService service.ClassService, eligibility *service.EligibilityService) *ClassHandler {
	return &ClassHandler{classService: classService, eligibility: eligibility}
}

// ListClasses godoc
// GET /api/v1/classes?with_sections=true
// Lists all classes, or only those that have at least one section.
func (h *ClassHandler) ListClasses(c *gin.Context) {
	var query struct {
		WithSections bool `form:"with_sections"`
	}
	if fields := validator.BindQuery(c, &query); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	var (
		classes []*model.Class
		err     error
	)
	if query.WithSections {
		classes, err = h.eligibility.ClassesWithSections(c.Request.Context())
	} else {
		classes, err = h.classService.GetAllClasses(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"classes": classes})
}

// GetClass godoc
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	class, err := h.classService.GetClass(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}

// ListClassSections godoc
// GET /api/v1/classes/:id/sections
// Lists the sections that belong to the class.
func (h *ClassHandler) ListClassSections(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	sections, err := h.eligibility.SectionsForClass(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sections": sections})
}

// CreateClass godoc
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.CreateClass(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"class": class})
}

// UpdateClass godoc
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.ClassRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	class, err := h.classService.UpdateClass(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"class": class})
}
