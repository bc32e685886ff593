package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/validator"
)

// AssignmentHandler handles institute-to-section assignments.
type AssignmentHandler struct {
	assignmentService service.AssignmentService
}

// NewAssignmentHandler creates a new AssignmentHandler.
func NewAssignmentHandler(assignmentService service.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{assignmentService: assignmentService}
}

// ListAssignments godoc
// GET /api/v1/assignments
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	assignments, err := h.assignmentService.GetAllAssignments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondPage(c, "assignments", assignments)
}

// GetAssignment godoc
// GET /api/v1/assignments/:id
func (h *AssignmentHandler) GetAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.assignmentService.GetAssignment(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignment": a})
}

// CreateAssignment godoc
// POST /api/v1/assignments
// Rejects a section that belongs to a different class with 422.
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	var req model.AssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.assignmentService.CreateAssignment(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"assignment": a})
}

// UpdateAssignment godoc
// PUT /api/v1/assignments/:id
func (h *AssignmentHandler) UpdateAssignment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req model.AssignmentRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	a, err := h.assignmentService.UpdateAssignment(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"assignment": a})
}
