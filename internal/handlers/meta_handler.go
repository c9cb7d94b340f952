package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/models"
)

// MetaHandler serves the reference lists the forms are built from
type MetaHandler struct {
	meta models.Meta
}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{meta: models.BuildMeta()}
}

// GetMeta handles GET /api/v1/meta
func (h *MetaHandler) GetMeta(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.JSON(http.StatusOK, h.meta)
}
