package cognito

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// keySetTTL is how long a fetched key set stays valid. Cognito signing keys
// rotate rarely; one hour matches the upstream authorizers.
const keySetTTL = 1 * time.Hour

// Key is one published signing key from the provider's JWKS document.
// N and E are base64url-encoded big-endian integers as published.
type Key struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Alg string `json:"alg"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// KeySet is an immutable snapshot of the provider's published keys. It is
// replaced wholesale when it expires, never mutated in place.
type KeySet struct {
	keys      map[string]Key
	fetchedAt time.Time
	ttl       time.Duration
}

// newKeySet builds a KeySet snapshot from a parsed JWKS document
func newKeySet(keys []Key, fetchedAt time.Time, ttl time.Duration) *KeySet {
	byKid := make(map[string]Key, len(keys))
	for _, k := range keys {
		byKid[k.Kid] = k
	}
	return &KeySet{keys: byKid, fetchedAt: fetchedAt, ttl: ttl}
}

// Lookup returns the key with the given key id
func (s *KeySet) Lookup(kid string) (Key, bool) {
	k, ok := s.keys[kid]
	return k, ok
}

// Len returns the number of keys in the set
func (s *KeySet) Len() int {
	return len(s.keys)
}

// expired reports whether the snapshot's TTL has elapsed at the given time
func (s *KeySet) expired(now time.Time) bool {
	return now.After(s.fetchedAt.Add(s.ttl))
}

// KeySetFetcher retrieves the provider's full key set. Implementations own
// the transport; the cache owns freshness.
type KeySetFetcher interface {
	FetchKeySet(ctx context.Context) ([]Key, error)
}

// HTTPKeySetFetcher fetches the JWKS document from the Cognito well-known
// endpoint over HTTPS.
type HTTPKeySetFetcher struct {
	url        string
	httpClient *http.Client
}

// NewHTTPKeySetFetcher creates a fetcher for the given user pool. A nil
// httpClient gets a 10 second timeout client.
func NewHTTPKeySetFetcher(region, userPoolID string, httpClient *http.Client) *HTTPKeySetFetcher {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPKeySetFetcher{
		url: fmt.Sprintf(
			"https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
			region, userPoolID,
		),
		httpClient: httpClient,
	}
}

// FetchKeySet performs the HTTPS GET and parses the JWKS body
func (f *HTTPKeySetFetcher) FetchKeySet(ctx context.Context) ([]Key, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("JWKS request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("JWKS request returned status %d", resp.StatusCode)
	}

	var doc struct {
		Keys []Key `json:"keys"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode JWKS body: %w", err)
	}

	return doc.Keys, nil
}

// KeySetCache caches the provider's key set and refreshes it when the TTL
// elapses. The mutex guards only the snapshot swap, never the network call:
// concurrent callers may race to refresh an expired set, both fetches
// succeed and the last writer wins. A failed refresh keeps the stale
// snapshot in place for the next call.
type KeySetCache struct {
	fetcher KeySetFetcher
	now     func() time.Time
	ttl     time.Duration
	logger  *zap.Logger

	mu     sync.RWMutex
	cached *KeySet
}

// NewKeySetCache creates a cache around the given fetcher. The clock
// defaults to time.Now and the logger to a no-op logger.
func NewKeySetCache(fetcher KeySetFetcher, now func() time.Time, logger *zap.Logger) *KeySetCache {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KeySetCache{
		fetcher: fetcher,
		now:     now,
		ttl:     keySetTTL,
		logger:  logger,
	}
}

// Get returns the cached key set while fresh, refreshing it otherwise
func (c *KeySetCache) Get(ctx context.Context) (*KeySet, error) {
	c.mu.RLock()
	cached := c.cached
	c.mu.RUnlock()

	if cached != nil && !cached.expired(c.now()) {
		return cached, nil
	}

	keys, err := c.fetcher.FetchKeySet(ctx)
	if err != nil {
		c.logger.Warn("key set refresh failed", zap.Error(err))
		return nil, newAuthError(KindKeyFetch, "failed to fetch signing keys", err)
	}

	fresh := newKeySet(keys, c.now(), c.ttl)

	c.mu.Lock()
	c.cached = fresh
	c.mu.Unlock()

	c.logger.Debug("key set refreshed", zap.Int("keys", fresh.Len()))
	return fresh, nil
}

// Invalidate discards the cached key set (useful for testing or forced refresh)
func (c *KeySetCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cached = nil
}
