package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// parseIDParam reads a numeric :id-style path parameter. On failure it writes
// the validation error response and returns false.
func parseIDParam(c *gin.Context, name string) (int64, bool) {
	idStr := c.Param(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid "+name+" format.", err.Error()))
		return 0, false
	}
	return id, true
}

// parsePagination reads page/page_size query parameters with the usual
// defaults. On failure it writes the validation error response and returns false.
func parsePagination(c *gin.Context) (page, pageSize int, ok bool) {
	page, pageSize = 1, 10

	if pageStr := c.Query("page"); pageStr != "" {
		parsed, err := strconv.Atoi(pageStr)
		if err != nil || parsed < 1 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be a positive integer"))
			return 0, 0, false
		}
		page = parsed
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		parsed, err := strconv.Atoi(pageSizeStr)
		if err != nil || parsed < 1 {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be a positive integer"))
			return 0, 0, false
		}
		pageSize = parsed
	}
	return page, pageSize, true
}

// searchTermQuery returns the optional search query parameter.
func searchTermQuery(c *gin.Context) *string {
	if term := c.Query("search"); term != "" {
		return &term
	}
	return nil
}

// respondPaginated writes the standard list envelope.
func respondPaginated(c *gin.Context, data interface{}, total, page, pageSize int) {
	c.JSON(http.StatusOK, gin.H{
		"data":      data,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
