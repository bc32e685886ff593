package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/repository"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/service"
)

// respondError maps a service error onto the response envelope.
func respondError(c *gin.Context, err error) {
	var (
		ve *service.ValidationError
		nf *service.NotFoundError
		se *service.StorageError
	)

	switch {
	case errors.Is(err, service.ErrSectionClassMismatch):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrSectionClassMismatch, validationFields(err))
	case errors.Is(err, service.ErrNoAssignment):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrNoAssignment, validationFields(err))
	case errors.Is(err, service.ErrUnsupportedDocument):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrUnsupportedFile, validationFields(err))
	case errors.Is(err, service.ErrDocumentTooLarge):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrFileTooLarge, validationFields(err))
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusUnprocessableEntity, response.ErrValidation, map[string]string{ve.Field: ve.Reason})
	case errors.As(err, &nf):
		response.FailWithFields(c, http.StatusNotFound, response.ErrNotFound, map[string]string{nf.Entity: fmt.Sprint(nf.ID)})
	case errors.Is(err, repository.ErrConflict):
		response.Fail(c, http.StatusConflict, response.ErrConflict)
	case errors.As(err, &se):
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Msg("Document storage failed")
		response.Fail(c, http.StatusBadGateway, response.ErrStorage)
	default:
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}

func validationFields(err error) map[string]string {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		return map[string]string{ve.Field: ve.Reason}
	}
	return nil
}

// parseID reads a positive integer path parameter. It writes the error
// response itself and reports false on failure.
func parseID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidID)
		return 0, false
	}
	return id, true
}
