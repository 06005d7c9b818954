package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	srvErrors "github.com/openscan/vuln-manager/pkg/errors"
)

type settingRequest struct {
	Value string `json:"value" binding:"required"`
}

// (GET /settings/:name)
func (h *Handler) GetSetting(c *gin.Context) {
	setting, err := h.settings.Get(c.Request.Context(), c.Param("name"))
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("setting_handler").Errorw("failed to get setting", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get setting"})
		return
	}
	c.JSON(http.StatusOK, setting)
}

// (PUT /settings/:name)
func (h *Handler) SetSetting(c *gin.Context) {
	var req settingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.settings.Set(c.Request.Context(), c.Param("name"), req.Value); err != nil {
		if srvErrors.IsInvalidArgumentError(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		zap.S().Named("setting_handler").Errorw("failed to set setting", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set setting"})
		return
	}
	c.Status(http.StatusNoContent)
}
