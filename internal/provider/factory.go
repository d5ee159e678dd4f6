package provider

import (
	"time"

	"github.com/graphmine/excavator/internal/config"
)

// New builds the provider set from configuration: a Wikipedia client,
// wrapped with LRU caches when a cache size is configured. contentChars is
// the summary character budget for content capture.
func New(cfg config.WikipediaConfig, contentChars int) (LinkProvider, TranslationProvider, ContentProvider, error) {
	wiki := NewWikipedia(cfg.BaseURL, cfg.UserAgent, time.Duration(cfg.TimeoutSeconds)*time.Second, contentChars)

	var links LinkProvider = wiki
	var translations TranslationProvider = wiki
	if cfg.CacheSize > 0 {
		var err error
		links, err = NewCachedLinkProvider(wiki, cfg.CacheSize)
		if err != nil {
			return nil, nil, nil, err
		}
		translations, err = NewCachedTranslationProvider(wiki, cfg.CacheSize)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	return links, translations, wiki, nil
}
