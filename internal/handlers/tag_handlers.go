package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/models"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/internal/services"
	"github.com/obrunogonzaga/clinic-appointment-system-sub001/pkg/utils"
)

// TagHandler holds the tag service.
type TagHandler struct {
	tagService services.TagService
}

// NewTagHandler creates a new TagHandler.
func NewTagHandler(ts services.TagService) *TagHandler {
	return &TagHandler{tagService: ts}
}

// CreateTag handles the creation of a new tag.
func (h *TagHandler) CreateTag(c *gin.Context) {
	var req services.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "CreateTag: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tag, err := h.tagService.CreateTag(req)
	if err != nil {
		utils.LogError(err, "CreateTag: Error from tagService.CreateTag")
		if errors.Is(err, services.ErrTagNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A tag with this name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrTagValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid tag data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to create tag.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusCreated, tag)
}

// GetTags handles listing tags with search and pagination.
func (h *TagHandler) GetTags(c *gin.Context) {
	page, pageSize, ok := parsePagination(c)
	if !ok {
		return
	}

	includeInactive := false
	if includeStr := c.Query("include_inactive"); includeStr != "" {
		parsed, err := strconv.ParseBool(includeStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid include_inactive format.", err.Error()))
			return
		}
		includeInactive = parsed
	}

	tags, totalCount, err := h.tagService.GetTags(page, pageSize, searchTermQuery(c), includeInactive)
	if err != nil {
		utils.LogError(err, "GetTags: Error from tagService.GetTags")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tags.", "Internal error"))
		return
	}
	if tags == nil {
		tags = []models.Tag{}
	}
	respondPaginated(c, tags, totalCount, page, pageSize)
}

// GetTagByID handles fetching a single tag summary.
func (h *TagHandler) GetTagByID(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.tagService.GetTagSummary(tagID)
	if err != nil {
		utils.LogError(err, "GetTagByID: Error from tagService.GetTagSummary")
		if errors.Is(err, services.ErrTagNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tag not found.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to fetch tag.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

// UpdateTag handles renaming, recoloring and activating/deactivating a tag.
func (h *TagHandler) UpdateTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.LogError(err, "UpdateTag: Failed to bind JSON")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid request payload: "+err.Error(), err.Error()))
		return
	}

	tag, err := h.tagService.UpdateTag(tagID, req)
	if err != nil {
		utils.LogError(err, "UpdateTag: Error from tagService.UpdateTag")
		if errors.Is(err, services.ErrTagNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tag not found to update.", err.Error()))
		} else if errors.Is(err, services.ErrTagNoChanges) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeNoChanges, "Update request contains no changes.", err.Error()))
		} else if errors.Is(err, services.ErrTagNameExists) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "A tag with this name already exists.", err.Error()))
		} else if errors.Is(err, services.ErrTagValidation) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid tag data.", err.Error()))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update tag.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, tag)
}

// DeleteTag handles deleting a tag that is no longer referenced.
func (h *TagHandler) DeleteTag(c *gin.Context) {
	tagID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(tagID); err != nil {
		utils.LogError(err, "DeleteTag: Error from tagService.DeleteTag")
		var inUse *services.TagInUseError
		if errors.Is(err, services.ErrTagNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Tag not found to delete.", err.Error()))
		} else if errors.As(err, &inUse) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Tag is still referenced by appointments.", strconv.Itoa(inUse.References)+" appointment(s) reference this tag"))
		} else {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to delete tag.", "Internal error"))
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Tag deleted successfully"})
}
