package provider

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the requested document does not exist. The crawl
// skips the vertex and continues; it is never fatal.
var ErrNotFound = errors.New("document not found")

// AmbiguousTitleError reports that a title resolves to a disambiguation page.
// Candidates lists the disambiguation targets in page order; callers resolve
// by taking the first one.
type AmbiguousTitleError struct {
	Title      string
	Candidates []string
}

func (e *AmbiguousTitleError) Error() string {
	return fmt.Sprintf("ambiguous title %q (%d candidates)", e.Title, len(e.Candidates))
}

// ProviderError wraps a transient fetch failure (network, decoding, rate
// limiting). It propagates to the caller of the affected per-language stage.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
