package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/institute-backend/internal/response"
	"github.com/stemsi/institute-backend/internal/validator"
)

const defaultPerPage = 50

// pageQuery is the optional ?page=&per_page= of list endpoints.
type pageQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=200"`
}

// bindPage reads the paging parameters. It writes the error response itself
// and reports false on failure.
func bindPage(c *gin.Context) (pageQuery, bool) {
	var q pageQuery
	if fields := validator.BindQuery(c, &q); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return q, false
	}
	if q.Page == 0 {
		q.Page = 1
	}
	if q.PerPage == 0 {
		q.PerPage = defaultPerPage
	}
	return q, true
}

// paginate cuts one page out of items. Pages past the end are empty.
func paginate[T any](items []T, q pageQuery) ([]T, *response.Pagination) {
	total := len(items)
	start := total
	if q.Page-1 < (total+q.PerPage-1)/q.PerPage {
		start = (q.Page - 1) * q.PerPage
	}
	end := min(start+q.PerPage, total)

	page := items[start:end]
	if page == nil {
		page = []T{}
	}
	return page, response.NewPagination(q.Page, q.PerPage, total)
}

// respondPage binds the paging parameters, then sends the page of items
// under key.
func respondPage[T any](c *gin.Context, key string, items []T) {
	q, ok := bindPage(c)
	if !ok {
		return
	}
	page, pagination := paginate(items, q)
	response.SuccessWithPagination(c, http.StatusOK, gin.H{key: page}, pagination)
}
