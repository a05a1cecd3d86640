// internal/store/providers.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"sponsornest/internal/common/logger"
	"sponsornest/internal/models"
)

const (
	providersCollection = "providers"
	providerSnapshotKey = "providers:snapshot"
)

// Lister reads whole collections from the document store.
type Lister interface {
	List(ctx context.Context, collection string) ([]Document, error)
}

// ProviderSource reads the full provider population, caching a snapshot in
// redis. Cache failures degrade to a direct store read.
type ProviderSource struct {
	store  Lister
	cache  *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

// NewProviderSource creates a provider source. cache may be nil, in which
// case every Snapshot hits the store.
func NewProviderSource(store Lister, cache *redis.Client, ttl time.Duration, log logger.Logger) *ProviderSource {
	return &ProviderSource{store: store, cache: cache, ttl: ttl, logger: log}
}

// Snapshot returns all providers, keeping each document's id on the model.
func (s *ProviderSource) Snapshot(ctx context.Context) ([]models.Provider, error) {
	if providers, ok := s.fromCache(ctx); ok {
		return providers, nil
	}

	docs, err := s.store.List(ctx, providersCollection)
	if err != nil {
		return nil, err
	}

	providers := make([]models.Provider, 0, len(docs))
	for _, doc := range docs {
		var p models.Provider
		if err := doc.Decode(&p); err != nil {
			s.logger.WithError(err).Warn("skipping undecodable provider document", map[string]interface{}{
				"documentId": doc.ID,
			})
			continue
		}
		p.ID = doc.ID
		providers = append(providers, p)
	}

	s.toCache(ctx, providers)
	return providers, nil
}

// Invalidate drops the cached snapshot so the next read hits the store.
func (s *ProviderSource) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, providerSnapshotKey).Err(); err != nil {
		s.logger.WithError(err).Warn("provider snapshot invalidation failed", nil)
	}
}

func (s *ProviderSource) fromCache(ctx context.Context) ([]models.Provider, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, err := s.cache.Get(ctx, providerSnapshotKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.WithError(err).Warn("provider snapshot cache read failed", nil)
		}
		return nil, false
	}
	var providers []models.Provider
	if err := json.Unmarshal(raw, &providers); err != nil {
		s.logger.WithError(err).Warn("provider snapshot cache corrupt", nil)
		return nil, false
	}
	return providers, true
}

func (s *ProviderSource) toCache(ctx context.Context, providers []models.Provider) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(providers)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, providerSnapshotKey, raw, s.ttl).Err(); err != nil {
		s.logger.WithError(err).Warn("provider snapshot cache write failed", nil)
	}
}
