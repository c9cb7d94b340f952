package services

import (
	"context"
	"strings"
	"time"

	"github.com/nmm-portal/nmm-api/internal/cache"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/internal/repository"
	"github.com/nmm-portal/nmm-api/internal/validation"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"github.com/nmm-portal/nmm-api/pkg/retry"
	"github.com/nmm-portal/nmm-api/pkg/storage"
	"go.uber.org/zap"
)

// MaxResourceMB caps library uploads
const MaxResourceMB = 50

// ResourceService handles the resource library
type ResourceService struct {
	resources  repository.ResourceStore
	files      storage.FileStore
	categories *cache.CategoryCache
	retry      retry.Config
	now        func() time.Time
}

// NewResourceService creates a new resource service instance
func NewResourceService(resources repository.ResourceStore, files storage.FileStore, categories *cache.CategoryCache) *ResourceService {
	return &ResourceService{
		resources:  resources,
		files:      files,
		categories: categories,
		retry:      retry.StorageConfig(),
		now:        time.Now,
	}
}

// GetResources lists the library, newest first, narrowed by filter
func (s *ResourceService) GetResources(ctx context.Context, filter models.ResourceFilter) ([]*models.Resource, error) {
	category := filter.Category
	if category == models.AllResourceCategories {
		category = ""
	}

	all, err := s.resources.ListResources(ctx, category)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Resource, 0, len(all))
	for _, r := range all {
		if filter.Matches(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Categories returns the categories in use, served from cache
func (s *ResourceService) Categories(ctx context.Context) ([]string, error) {
	return s.categories.Get(ctx)
}

// UploadResource stores a file and adds it to the library. The type comes
// from the media type, the title defaults to the file name and the
// category to "General".
func (s *ResourceService) UploadResource(ctx context.Context, session *models.UserSession, req *models.UploadResourceRequest, file models.FileHandle) (*models.Resource, error) {
	if errs := validateUpload(file); len(errs) > 0 {
		metrics.ResourceUploads.WithLabelValues("unknown", "validation_failed").Inc()
		return nil, validationFailure(errs)
	}

	resType := models.ResourceTypeFor(file.ContentType)

	key := storage.GenerateKey("resources", session.UserID, file.Name)
	url, err := retry.DoWithResult(ctx, s.retry, "upload_resource", func() (string, error) {
		return s.files.Put(ctx, key, file.ContentType, file.Data)
	})
	if err != nil {
		logger.Error("Failed to upload resource file",
			zap.String("user_id", session.UserID),
			zap.Error(err))
		metrics.ResourceUploads.WithLabelValues(string(resType), "storage_error").Inc()
		return nil, err
	}

	r := &models.Resource{
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Type:        resType,
		URL:         url,
		UploadedBy:  session.UserID,
		UploadedAt:  s.now().UTC(),
		Category:    strings.TrimSpace(req.Category),
	}
	if r.Title == "" {
		r.Title = file.Name
	}
	if r.Category == "" || r.Category == models.AllResourceCategories {
		r.Category = models.DefaultResourceCategory
	}

	created, err := s.resources.CreateResource(ctx, r)
	if err != nil {
		metrics.ResourceUploads.WithLabelValues(string(resType), "error").Inc()
		return nil, err
	}

	s.categories.Invalidate()
	metrics.ResourceUploads.WithLabelValues(string(resType), "success").Inc()
	logger.Info("Resource uploaded",
		zap.String("resource_id", created.ID),
		zap.String("type", string(resType)),
		zap.String("category", created.Category))

	return created, nil
}

// GetFile returns a stored file by key
func (s *ResourceService) GetFile(ctx context.Context, key string) (*storage.Object, error) {
	return s.files.Get(ctx, strings.TrimPrefix(key, "/"))
}

func validateUpload(file models.FileHandle) validation.ValidationErrors {
	errs := validation.ValidationErrors{}
	switch {
	case len(file.Data) == 0:
		errs = append(errs, validation.ValidationError{
			Field: "file", Code: validation.CodeRequired, Message: "File is required",
		})
	case !validation.ValidateFileSize(file, MaxResourceMB):
		errs = append(errs, validation.ValidationError{
			Field:   "file",
			Code:    validation.CodeTooLarge,
			Message: "File " + file.Name + " exceeds 50MB size limit",
			Params:  []string{file.Name, "50"},
		})
	}
	return errs
}
