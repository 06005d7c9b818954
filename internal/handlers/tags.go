package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openscan/vuln-manager/internal/models"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

type tagRequest struct {
	Name         string   `json:"name" binding:"required"`
	Value        string   `json:"value"`
	Comment      string   `json:"comment"`
	Active       bool     `json:"active"`
	ResourceType string   `json:"resource_type" binding:"required"`
	Owner        string   `json:"owner"`
	Resources    []string `json:"resources"`
}

// CreateTag creates a tag and attaches it to the given resource UUIDs.
// (POST /tags)
func (h *Handler) CreateTag(c *gin.Context) {
	var req tagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t := &models.Tag{
		Name:         req.Name,
		Value:        req.Value,
		Comment:      req.Comment,
		Active:       req.Active,
		ResourceType: req.ResourceType,
		Owner:        req.Owner,
	}
	id, err := h.tags.Create(c.Request.Context(), t, req.Resources)
	if err != nil {
		switch {
		case srvErrors.IsUnknownResourceTypeError(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case srvErrors.IsResourceNotFoundError(err):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			zap.S().Named("tag_handler").Errorw("failed to create tag", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create tag"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uuid": id})
}
