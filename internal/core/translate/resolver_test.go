package translate

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphmine/excavator/internal/provider"
)

type mapTranslations struct {
	known map[string]map[string]string
}

func (m *mapTranslations) GetTranslations(ctx context.Context, id, lang string) (map[string]string, error) {
	t, ok := m.known[id]
	if !ok {
		return nil, fmt.Errorf("translations %s/%s: %w", lang, id, provider.ErrNotFound)
	}
	return t, nil
}

type failingTranslations struct{}

func (failingTranslations) GetTranslations(ctx context.Context, id, lang string) (map[string]string, error) {
	return nil, &provider.ProviderError{Op: "fetch", Err: fmt.Errorf("timeout")}
}

func TestResolve_FiltersToTargetLanguages(t *testing.T) {
	tp := &mapTranslations{known: map[string]map[string]string{
		"Mathematics": {"fr": "Mathématiques", "es": "Matemáticas", "de": "Mathematik"},
	}}

	table, err := New(tp).Resolve(context.Background(),
		map[string]bool{"Mathematics": true}, "en", []string{"en", "fr", "es"})
	require.NoError(t, err)

	// "de" is outside the configured set and must not leak through.
	assert.Equal(t, Table{
		"Mathematics": {"fr": "Mathématiques", "es": "Matemáticas"},
	}, table)
}

func TestResolve_SkipsMissingVertices(t *testing.T) {
	tp := &mapTranslations{known: map[string]map[string]string{
		"Known": {"fr": "Connu"},
	}}

	table, err := New(tp).Resolve(context.Background(),
		map[string]bool{"Known": true, "Gone": true}, "en", []string{"en", "fr"})
	require.NoError(t, err)

	assert.Len(t, table, 1)
	assert.Contains(t, table, "Known")
}

func TestResolve_OmitsEmptyEntries(t *testing.T) {
	tp := &mapTranslations{known: map[string]map[string]string{
		"Lonely": {"de": "Einsam"}, // only a language we do not want
	}}

	table, err := New(tp).Resolve(context.Background(),
		map[string]bool{"Lonely": true}, "en", []string{"en", "fr"})
	require.NoError(t, err)

	assert.Empty(t, table)
}

func TestResolve_ProviderErrorPropagates(t *testing.T) {
	_, err := New(failingTranslations{}).Resolve(context.Background(),
		map[string]bool{"A": true}, "en", []string{"en", "fr"})
	require.Error(t, err)

	var pe *provider.ProviderError
	assert.ErrorAs(t, err, &pe)
}
