package kvstore

import (
	"context"
	"fmt"

	gocache "github.com/patrickmn/go-cache"
)

// GoCache is a Store backed by patrickmn/go-cache with expiration disabled.
type GoCache struct {
	cache *gocache.Cache
}

func NewGoCache() *GoCache {
	return &GoCache{cache: gocache.New(gocache.NoExpiration, 0)}
}

func (s *GoCache) Get(ctx context.Context, key string) (string, bool, error) {
	_ = ctx
	v, ok := s.cache.Get(key)
	if !ok {
		return "", false, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", false, fmt.Errorf("unexpected value type %T for key %q", v, key)
	}
	return str, true, nil
}

func (s *GoCache) Set(ctx context.Context, key, value string) error {
	_ = ctx
	s.cache.SetDefault(key, value)
	return nil
}

func (s *GoCache) Delete(ctx context.Context, key string) error {
	_ = ctx
	s.cache.Delete(key)
	return nil
}
