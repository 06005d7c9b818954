package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/openscan/vuln-manager/internal/services"
)

type Handler struct {
	listing  *services.Listing
	filters  *services.Filters
	tags     *services.Tags
	settings *services.Settings
}

func New(listing *services.Listing, filters *services.Filters, tags *services.Tags, settings *services.Settings) *Handler {
	return &Handler{
		listing:  listing,
		filters:  filters,
		tags:     tags,
		settings: settings,
	}
}

func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/resources/:type", h.ListResources)
	router.GET("/resources/:type/count", h.CountResources)

	router.POST("/filters", h.CreateFilter)
	router.GET("/filters/:id", h.GetFilter)
	router.PUT("/filters/:id", h.UpdateFilter)
	router.PUT("/filters/:id/keyword", h.ReplaceFilterKeyword)
	router.DELETE("/filters/:id", h.DeleteFilter)

	router.POST("/tags", h.CreateTag)

	router.GET("/settings/:name", h.GetSetting)
	router.PUT("/settings/:name", h.SetSetting)
}
