package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/nmm-portal/nmm-api/internal/models"
	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

const (
	preferencesKeyPrefix = "nmm:preferences:"
	// anonymous visitors come back within months, not years
	preferencesTTL = 180 * 24 * time.Hour
)

// PreferenceStore persists display preferences by owner key
type PreferenceStore interface {
	// Load returns the stored preferences; found is false for new owners
	Load(ctx context.Context, ownerKey string) (prefs models.Preferences, found bool, err error)
	Save(ctx context.Context, ownerKey string, prefs models.Preferences) error
	Backend() string
}

// RedisPreferenceStore keeps preferences as JSON strings in Redis
type RedisPreferenceStore struct {
	client *redis.Client
}

// NewRedisPreferenceStore creates a store on an existing client
func NewRedisPreferenceStore(client *redis.Client) *RedisPreferenceStore {
	return &RedisPreferenceStore{client: client}
}

func (s *RedisPreferenceStore) Backend() string { return "redis" }

func (s *RedisPreferenceStore) Load(ctx context.Context, ownerKey string) (models.Preferences, bool, error) {
	raw, err := s.client.Get(ctx, preferencesKeyPrefix+ownerKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Preferences{}, false, nil
		}
		return models.Preferences{}, false, fmt.Errorf("redis get preferences: %w", err)
	}

	var prefs models.Preferences
	if err := json.Unmarshal(raw, &prefs); err != nil {
		return models.Preferences{}, false, fmt.Errorf("decode preferences: %w", err)
	}
	return prefs, true, nil
}

func (s *RedisPreferenceStore) Save(ctx context.Context, ownerKey string, prefs models.Preferences) error {
	raw, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	if err := s.client.Set(ctx, preferencesKeyPrefix+ownerKey, raw, preferencesTTL).Err(); err != nil {
		return fmt.Errorf("redis set preferences: %w", err)
	}
	return nil
}

// MemoryPreferenceStore keeps preferences in process memory
type MemoryPreferenceStore struct {
	cache *gocache.Cache
}

// NewMemoryPreferenceStore creates an in-process store
func NewMemoryPreferenceStore() *MemoryPreferenceStore {
	return &MemoryPreferenceStore{cache: gocache.New(preferencesTTL, time.Hour)}
}

func (s *MemoryPreferenceStore) Backend() string { return "memory" }

func (s *MemoryPreferenceStore) Load(_ context.Context, ownerKey string) (models.Preferences, bool, error) {
	data, found := s.cache.Get(preferencesKeyPrefix + ownerKey)
	if !found {
		return models.Preferences{}, false, nil
	}
	prefs, ok := data.(models.Preferences)
	if !ok {
		s.cache.Delete(preferencesKeyPrefix + ownerKey)
		return models.Preferences{}, false, nil
	}
	return prefs, true, nil
}

func (s *MemoryPreferenceStore) Save(_ context.Context, ownerKey string, prefs models.Preferences) error {
	s.cache.Set(preferencesKeyPrefix+ownerKey, prefs, gocache.DefaultExpiration)
	return nil
}
