package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openscan/vuln-manager/internal/services"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

// ListResources runs a filtered listing for one resource type.
// (GET /resources/:type)
func (h *Handler) ListResources(c *gin.Context) {
	params := services.ListParams{
		Type:   c.Param("type"),
		Filter: c.Query("filter"),
		Trash:  c.Query("trash") == "true",
	}

	result, err := h.listing.List(c.Request.Context(), params)
	if err != nil {
		if srvErrors.IsUnknownResourceTypeError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("resource_handler").Errorw("failed to list resources",
			"type", params.Type, "filter", params.Filter, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list resources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources": result.Rows,
		"total":     result.Total,
		"first":     result.First,
		"max":       result.Max,
	})
}

// CountResources returns only the number of matches for a filter term,
// without fetching a page.
// (GET /resources/:type/count)
func (h *Handler) CountResources(c *gin.Context) {
	params := services.ListParams{
		Type:   c.Param("type"),
		Filter: c.Query("filter"),
		Trash:  c.Query("trash") == "true",
	}

	count, err := h.listing.Count(c.Request.Context(), params)
	if err != nil {
		if srvErrors.IsUnknownResourceTypeError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("resource_handler").Errorw("failed to count resources",
			"type", params.Type, "filter", params.Filter, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count resources"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
