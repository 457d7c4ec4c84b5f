package wordlist

import (
	"context"
	"time"

	"github.com/go-redis/cache/v9"
	"github.com/redis/go-redis/v9"
)

const activeWordsKey = "riskengine/words/active"

// CachedSource wraps another WordSource with a TTL cache so that every
// evaluation does not hit the word store. With a redis URL the cache is
// shared across workers (plus a small local TinyLFU layer); without one it
// is purely in-process.
type CachedSource struct {
	Source WordSource
	data   *cache.Cache
	ttl    time.Duration
}

var _ WordSource = (*CachedSource)(nil)

func NewCachedSource(source WordSource, redisURL string, ttl time.Duration) (*CachedSource, error) {
	opts := &cache.Options{
		LocalCache: cache.NewTinyLFU(1_000, ttl),
	}
	if redisURL != "" {
		opt, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, err
		}
		rdb := redis.NewClient(opt)
		// check redis connection
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			return nil, err
		}
		opts.Redis = rdb
	}
	return &CachedSource{
		Source: source,
		data:   cache.New(opts),
		ttl:    ttl,
	}, nil
}

func (s *CachedSource) ActiveWords(ctx context.Context) ([]string, error) {
	var words []string
	err := s.data.Get(ctx, activeWordsKey, &words)
	if err == nil {
		return words, nil
	}
	// any cache error (not just a miss) falls through to the source
	words, err = s.Source.ActiveWords(ctx)
	if err != nil {
		return nil, err
	}
	_ = s.data.Set(&cache.Item{
		Ctx:   ctx,
		Key:   activeWordsKey,
		Value: words,
		TTL:   s.ttl,
	})
	return words, nil
}

// Purge drops the cached list, eg after an administrator edits words.
func (s *CachedSource) Purge(ctx context.Context) error {
	err := s.data.Delete(ctx, activeWordsKey)
	if err == cache.ErrCacheMiss {
		return nil
	}
	return err
}
