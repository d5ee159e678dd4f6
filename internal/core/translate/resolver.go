// Package translate looks up cross-language equivalents for crawled vertices.
// It is a pure lookup stage: no traversal, and the crawl result is untouched.
package translate

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/graphmine/excavator/internal/provider"
)

// Table maps a vertex ID to its known equivalents, keyed by language code.
type Table map[string]map[string]string

// Resolver queries a TranslationProvider once per vertex.
type Resolver struct {
	Translations provider.TranslationProvider
}

func New(translations provider.TranslationProvider) *Resolver {
	return &Resolver{Translations: translations}
}

// Resolve builds the translation table for one language's vertex set. Only
// entries for languages in targetLanguages are kept: providers may know
// equivalents outside the configured set, and those must not leak into the
// graph. Vertices the provider no longer knows are skipped; transient
// failures abandon the stage for this language.
func (r *Resolver) Resolve(ctx context.Context, vertices map[string]bool, lang string, targetLanguages []string) (Table, error) {
	targets := make(map[string]bool, len(targetLanguages))
	for _, l := range targetLanguages {
		if l != lang {
			targets[l] = true
		}
	}

	ids := make([]string, 0, len(vertices))
	for id := range vertices {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	table := make(Table, len(ids))
	for _, id := range ids {
		found, err := r.Translations.GetTranslations(ctx, id, lang)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("translate %s/%s: %w", lang, id, err)
		}

		kept := make(map[string]string)
		for code, equivalent := range found {
			if targets[code] {
				kept[code] = equivalent
			}
		}
		if len(kept) > 0 {
			table[id] = kept
		}
	}

	return table, nil
}
