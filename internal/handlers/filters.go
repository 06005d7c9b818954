package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/openscan/vuln-manager/internal/models"
	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

type filterRequest struct {
	Name    string `json:"name" binding:"required"`
	Comment string `json:"comment"`
	Type    string `json:"type"`
	Term    string `json:"term"`
	Owner   string `json:"owner"`
}

type replaceKeywordRequest struct {
	Column      string `json:"column" binding:"required"`
	Replacement string `json:"replacement"`
}

// CreateFilter stores a named filter. The term is normalized before it is
// persisted.
// (POST /filters)
func (h *Handler) CreateFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f := &models.Filter{
		Name:    req.Name,
		Comment: req.Comment,
		Type:    req.Type,
		Term:    req.Term,
		Owner:   req.Owner,
	}
	id, err := h.filters.Create(c.Request.Context(), f)
	if err != nil {
		h.filterError(c, err, "failed to create filter")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"uuid": id, "term": f.Term})
}

// (GET /filters/:id)
func (h *Handler) GetFilter(c *gin.Context) {
	f, err := h.filters.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.filterError(c, err, "failed to get filter")
		return
	}
	c.JSON(http.StatusOK, f)
}

// (PUT /filters/:id)
func (h *Handler) UpdateFilter(c *gin.Context) {
	var req filterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f := &models.Filter{
		UUID:    c.Param("id"),
		Name:    req.Name,
		Comment: req.Comment,
		Type:    req.Type,
		Term:    req.Term,
		Owner:   req.Owner,
	}
	if err := h.filters.Update(c.Request.Context(), f); err != nil {
		h.filterError(c, err, "failed to update filter")
		return
	}
	c.JSON(http.StatusOK, f)
}

// ReplaceFilterKeyword swaps out every keyword on one column of a stored
// filter's term, keeping the rest of the term intact.
// (PUT /filters/:id/keyword)
func (h *Handler) ReplaceFilterKeyword(c *gin.Context) {
	var req replaceKeywordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := h.filters.ReplaceKeyword(c.Request.Context(), c.Param("id"), req.Column, req.Replacement)
	if err != nil {
		h.filterError(c, err, "failed to replace filter keyword")
		return
	}
	c.JSON(http.StatusOK, f)
}

// DeleteFilter moves a filter to the trashcan, or removes it permanently
// when ultimate=true.
// (DELETE /filters/:id)
func (h *Handler) DeleteFilter(c *gin.Context) {
	var err error
	if c.Query("ultimate") == "true" {
		err = h.filters.Delete(c.Request.Context(), c.Param("id"))
	} else {
		err = h.filters.Trash(c.Request.Context(), c.Param("id"))
	}
	if err != nil {
		h.filterError(c, err, "failed to delete filter")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) filterError(c *gin.Context, err error, msg string) {
	switch {
	case srvErrors.IsResourceNotFoundError(err):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case srvErrors.IsInvalidArgumentError(err), srvErrors.IsUnknownResourceTypeError(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		zap.S().Named("filter_handler").Errorw(msg, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
