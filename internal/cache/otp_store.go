package cache

import (
	"crypto/subtle"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

const otpKeyPrefix = "otp:"

// OTPStore holds one-time login codes until they are used or expire
type OTPStore struct {
	cache *gocache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

// NewOTPStore creates a code store with the given lifetime
func NewOTPStore(ttl time.Duration) *OTPStore {
	return &OTPStore{
		cache: gocache.New(ttl, time.Minute),
		ttl:   ttl,
	}
}

// Issue stores code for key, replacing any earlier code
func (s *OTPStore) Issue(key, code string) time.Time {
	s.cache.Set(otpKeyPrefix+key, code, s.ttl)
	return time.Now().Add(s.ttl)
}

// Consume reports whether code matches the one issued for key. A matching
// code is removed so it cannot be used twice.
func (s *OTPStore) Consume(key, code string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, found := s.cache.Get(otpKeyPrefix + key)
	if !found {
		return false
	}
	issued, ok := data.(string)
	if !ok || subtle.ConstantTimeCompare([]byte(issued), []byte(code)) != 1 {
		return false
	}

	s.cache.Delete(otpKeyPrefix + key)
	return true
}
