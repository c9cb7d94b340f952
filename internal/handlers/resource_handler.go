package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/i18n"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/services"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/storage"
)

// ResourceHandler serves the resource library and stored files
type ResourceHandler struct {
	service services.ResourceServiceInterface
	responder
}

// NewResourceHandler creates a new ResourceHandler
func NewResourceHandler(service services.ResourceServiceInterface, tr *i18n.Translator) *ResourceHandler {
	return &ResourceHandler{service: service, responder: responder{tr: tr}}
}

// GetResources handles GET /api/v1/resources?category=&search=&type=
func (h *ResourceHandler) GetResources(c *gin.Context) {
	resType, ok := models.ParseResourceType(c.Query("type"))
	if !ok {
		h.validation(c, validation.ValidationErrors{{
			Field: "type", Code: validation.CodeInvalid, Message: "Invalid resource type",
		}}, nil)
		return
	}

	filter := models.ResourceFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Type:     resType,
	}

	resources, err := h.service.GetResources(c.Request.Context(), filter)
	if err != nil {
		h.serviceError(c, err, "Failed to fetch resources")
		return
	}

	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.serviceError(c, err, "Failed to fetch resources")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"resources":  resources,
		"total":      len(resources),
		"categories": append([]string{models.AllResourceCategories}, categories...),
	})
}

// UploadResource handles POST /api/v1/resources (multipart: file, title, description, category)
func (h *ResourceHandler) UploadResource(c *gin.Context) {
	session, ok := h.currentSession(c)
	if !ok {
		return
	}

	var req models.UploadResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		h.bindError(c, err)
		return
	}

	var file models.FileHandle
	if fh, err := c.FormFile("file"); err == nil {
		file, err = readFile(fh)
		if err != nil {
			h.fail(c, http.StatusBadRequest, "Invalid request body", err)
			return
		}
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.fail(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	resource, err := h.service.UploadResource(c.Request.Context(), session, &req, file)
	if err != nil {
		h.serviceError(c, err, "Failed to upload resource")
		return
	}

	c.JSON(http.StatusCreated, resource)
}

// GetFile handles GET /api/v1/files/*key
func (h *ResourceHandler) GetFile(c *gin.Context) {
	obj, err := h.service.GetFile(c.Request.Context(), c.Param("key"))
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			h.fail(c, http.StatusNotFound, "Not found", err)
			return
		}
		h.serviceError(c, err, "Failed to fetch file")
		return
	}

	c.Header("Cache-Control", "private, max-age=3600")
	c.Data(http.StatusOK, obj.ContentType, obj.Data)
}
