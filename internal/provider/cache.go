package provider

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

// cachedLinks memoizes successful link lookups. BFS revisits nothing, but
// translations and overlapping crawls hit the same titles repeatedly, and the
// wiki API is rate limited.
type cachedLinks struct {
	inner LinkProvider
	cache *lru.Cache[string, []string]
}

// NewCachedLinkProvider wraps p with an LRU of the given size.
func NewCachedLinkProvider(p LinkProvider, size int) (LinkProvider, error) {
	c, err := lru.New[string, []string](size)
	if err != nil {
		return nil, fmt.Errorf("link cache: %w", err)
	}
	return &cachedLinks{inner: p, cache: c}, nil
}

func (c *cachedLinks) GetLinks(ctx context.Context, id, lang string) ([]string, error) {
	key := lang + ":" + id
	if links, ok := c.cache.Get(key); ok {
		return links, nil
	}
	links, err := c.inner.GetLinks(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, links)
	return links, nil
}

type cachedTranslations struct {
	inner TranslationProvider
	cache *lru.Cache[string, map[string]string]
}

// NewCachedTranslationProvider wraps p with an LRU of the given size.
func NewCachedTranslationProvider(p TranslationProvider, size int) (TranslationProvider, error) {
	c, err := lru.New[string, map[string]string](size)
	if err != nil {
		return nil, fmt.Errorf("translation cache: %w", err)
	}
	return &cachedTranslations{inner: p, cache: c}, nil
}

func (c *cachedTranslations) GetTranslations(ctx context.Context, id, lang string) (map[string]string, error) {
	key := lang + ":" + id
	if m, ok := c.cache.Get(key); ok {
		return m, nil
	}
	m, err := c.inner.GetTranslations(ctx, id, lang)
	if err != nil {
		return nil, err
	}
	c.cache.Add(key, m)
	return m, nil
}
