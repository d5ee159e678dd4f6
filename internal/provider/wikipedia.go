package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// badTitleChars marks titles that sit outside the main namespace or carry
// section anchors; links containing any of them are dropped.
var badTitleChars = []string{".", "#", ",", ":"}

const defaultBaseURL = "https://%s.wikipedia.org/w/api.php"

// Wikipedia talks to the MediaWiki action API. It implements LinkProvider,
// TranslationProvider and ContentProvider. One client serves all languages;
// the language code selects the host.
type Wikipedia struct {
	client    *http.Client
	baseURL   string // format string taking the language code
	userAgent string
	maxChars  int // summary character budget
}

func NewWikipedia(baseURL, userAgent string, timeout time.Duration, maxChars int) *Wikipedia {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Wikipedia{
		client:    &http.Client{Timeout: timeout},
		baseURL:   baseURL,
		userAgent: userAgent,
		maxChars:  maxChars,
	}
}

type parseResponse struct {
	Parse struct {
		Title string `json:"title"`
		Links []struct {
			NS     int    `json:"ns"`
			Exists bool   `json:"exists"`
			Title  string `json:"title"`
		} `json:"links"`
	} `json:"parse"`
	Error *apiError `json:"error"`
}

type queryResponse struct {
	Query struct {
		Pages []struct {
			Title     string `json:"title"`
			Missing   bool   `json:"missing"`
			Extract   string `json:"extract"`
			PageProps struct {
				Disambiguation *string `json:"disambiguation"`
			} `json:"pageprops"`
			LangLinks []struct {
				Lang  string `json:"lang"`
				Title string `json:"title"`
			} `json:"langlinks"`
		} `json:"pages"`
	} `json:"query"`
	Error *apiError `json:"error"`
}

type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

// GetLinks fetches the main-namespace links of the document's lead section,
// in page order, with malformed titles and self-links filtered out.
func (w *Wikipedia) GetLinks(ctx context.Context, id, lang string) ([]string, error) {
	params := url.Values{
		"action":        {"parse"},
		"page":          {id},
		"prop":          {"links"},
		"section":       {"0"},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var resp parseResponse
	if err := w.call(ctx, lang, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		if resp.Error.Code == "missingtitle" || resp.Error.Code == "invalidtitle" {
			return nil, fmt.Errorf("links %s/%s: %w", lang, id, ErrNotFound)
		}
		return nil, &ProviderError{Op: "links", Err: fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Info)}
	}

	var titles []string
	for _, l := range resp.Parse.Links {
		if l.NS != 0 || !l.Exists {
			continue
		}
		if badTitle(l.Title) || l.Title == resp.Parse.Title || l.Title == id {
			continue
		}
		titles = append(titles, l.Title)
	}
	return titles, nil
}

// GetTranslations returns the document's interlanguage links as a map from
// language code to the equivalent title.
func (w *Wikipedia) GetTranslations(ctx context.Context, id, lang string) (map[string]string, error) {
	params := url.Values{
		"action":        {"query"},
		"titles":        {id},
		"prop":          {"langlinks"},
		"lllimit":       {"500"},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var resp queryResponse
	if err := w.call(ctx, lang, params, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, &ProviderError{Op: "translations", Err: fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Info)}
	}
	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return nil, fmt.Errorf("translations %s/%s: %w", lang, id, ErrNotFound)
	}

	out := make(map[string]string)
	for _, ll := range resp.Query.Pages[0].LangLinks {
		out[ll.Lang] = ll.Title
	}
	return out, nil
}

// GetSummary returns the plain-text lead extract, cut to the configured
// character budget on a sentence boundary. Disambiguation pages come back as
// AmbiguousTitleError carrying the lead-section links as candidates.
func (w *Wikipedia) GetSummary(ctx context.Context, id, lang string) (string, error) {
	params := url.Values{
		"action":        {"query"},
		"titles":        {id},
		"prop":          {"extracts|pageprops"},
		"exintro":       {"1"},
		"explaintext":   {"1"},
		"ppprop":        {"disambiguation"},
		"redirects":     {"1"},
		"format":        {"json"},
		"formatversion": {"2"},
	}

	var resp queryResponse
	if err := w.call(ctx, lang, params, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", &ProviderError{Op: "summary", Err: fmt.Errorf("%s: %s", resp.Error.Code, resp.Error.Info)}
	}
	if len(resp.Query.Pages) == 0 || resp.Query.Pages[0].Missing {
		return "", fmt.Errorf("summary %s/%s: %w", lang, id, ErrNotFound)
	}

	page := resp.Query.Pages[0]
	if page.PageProps.Disambiguation != nil {
		candidates, err := w.GetLinks(ctx, id, lang)
		if err != nil {
			candidates = nil
		}
		return "", &AmbiguousTitleError{Title: id, Candidates: candidates}
	}

	return TruncateAtSentence(page.Extract, w.maxChars), nil
}

func (w *Wikipedia) call(ctx context.Context, lang string, params url.Values, out interface{}) error {
	endpoint := fmt.Sprintf(w.baseURL, lang)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return &ProviderError{Op: "request", Err: err}
	}
	if w.userAgent != "" {
		req.Header.Set("User-Agent", w.userAgent)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return &ProviderError{Op: "fetch", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &ProviderError{Op: "fetch", Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &ProviderError{Op: "read", Err: err}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &ProviderError{Op: "decode", Err: err}
	}
	return nil
}

func badTitle(title string) bool {
	for _, c := range badTitleChars {
		if strings.Contains(title, c) {
			return true
		}
	}
	return false
}
