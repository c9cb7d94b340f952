package services

import (
	"context"

	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"github.com/nmm-portal/nmm-api/pkg/metrics"
	"go.uber.org/zap"
)

// PreferencesService reads and writes display preferences. Owners are
// user ids for signed-in users and anonymous client ids otherwise.
type PreferencesService struct {
	store PreferenceStore
}

// NewPreferencesService creates a new preferences service instance
func NewPreferencesService(store PreferenceStore) *PreferencesService {
	return &PreferencesService{store: store}
}

// Get returns the owner's preferences, or the defaults for a new owner
func (s *PreferencesService) Get(ctx context.Context, ownerKey string) (models.Preferences, error) {
	prefs, found, err := s.store.Load(ctx, ownerKey)
	if err != nil {
		return models.Preferences{}, err
	}
	if !found {
		return models.DefaultPreferences(), nil
	}
	return prefs.Normalize(), nil
}

// Update merges the request into the stored preferences. The last writer wins.
func (s *PreferencesService) Update(ctx context.Context, ownerKey string, req *models.UpdatePreferencesRequest) (models.Preferences, error) {
	current, err := s.Get(ctx, ownerKey)
	if err != nil {
		metrics.PreferenceUpdates.WithLabelValues(s.store.Backend(), "error").Inc()
		return models.Preferences{}, err
	}

	updated := req.Apply(current)
	if err := s.store.Save(ctx, ownerKey, updated); err != nil {
		logger.Error("Failed to save preferences", zap.String("backend", s.store.Backend()), zap.Error(err))
		metrics.PreferenceUpdates.WithLabelValues(s.store.Backend(), "error").Inc()
		return models.Preferences{}, err
	}

	metrics.PreferenceUpdates.WithLabelValues(s.store.Backend(), "success").Inc()
	return updated, nil
}
