package provider

import (
	"context"
)

// LinkProvider returns the ordered outbound link titles found in a document's
// lead section. Implementations filter malformed and self-referential titles.
type LinkProvider interface {
	GetLinks(ctx context.Context, id, lang string) ([]string, error)
}

// TranslationProvider maps a document to its known equivalents in other
// languages, keyed by language code.
type TranslationProvider interface {
	GetTranslations(ctx context.Context, id, lang string) (map[string]string, error)
}

// ContentProvider returns a plain-text summary of a document, already
// truncated to the implementation's character budget on a sentence boundary.
// Only consulted when content capture is enabled.
type ContentProvider interface {
	GetSummary(ctx context.Context, id, lang string) (string, error)
}
