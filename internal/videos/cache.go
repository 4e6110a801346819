package videos

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	videoKeyPrefix  = "videos:meta:"   // videos:meta:{video_id}
	searchKeyPrefix = "videos:search:" // videos:search:{query}:{page_token}
	videoTTL        = 6 * time.Hour
	searchTTL       = 15 * time.Minute
)

// CachedProvider wraps a Provider with a redis metadata cache. Cache failures
// degrade to direct provider calls; they are logged but never surfaced.
type CachedProvider struct {
	inner  Provider
	client *redis.Client
}

func NewCachedProvider(inner Provider, client *redis.Client) *CachedProvider {
	return &CachedProvider{inner: inner, client: client}
}

func (p *CachedProvider) Video(ctx context.Context, id string) (*Video, error) {
	key := videoKeyPrefix + id

	data, err := p.client.Get(ctx, key).Result()
	if err == nil {
		var v Video
		if err := json.Unmarshal([]byte(data), &v); err == nil {
			recordCacheHit()
			return &v, nil
		}
	} else if err != redis.Nil {
		log.Printf("[warn] video cache get failed: %v", err)
	}
	recordCacheMiss()

	v, err := p.inner.Video(ctx, id)
	if err != nil {
		return nil, err
	}

	p.store(ctx, key, v, videoTTL)
	return v, nil
}

func (p *CachedProvider) Search(ctx context.Context, query, pageToken string) (*SearchPage, error) {
	key := fmt.Sprintf("%s%s:%s", searchKeyPrefix, query, pageToken)

	data, err := p.client.Get(ctx, key).Result()
	if err == nil {
		var page SearchPage
		if err := json.Unmarshal([]byte(data), &page); err == nil {
			recordCacheHit()
			return &page, nil
		}
	} else if err != redis.Nil {
		log.Printf("[warn] search cache get failed: %v", err)
	}
	recordCacheMiss()

	page, err := p.inner.Search(ctx, query, pageToken)
	if err != nil {
		return nil, err
	}

	p.store(ctx, key, page, searchTTL)
	return page, nil
}

func (p *CachedProvider) store(ctx context.Context, key string, v any, ttl time.Duration) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := p.client.Set(ctx, key, data, ttl).Err(); err != nil {
		log.Printf("[warn] video cache set failed: %v", err)
	}
}
