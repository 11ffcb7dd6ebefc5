// Package smartsearch enriches onboarding drafts from a creator's public web
// presence via Google Custom Search.
package smartsearch

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/averyk/creator-onboard/internal/docparse"
	"github.com/averyk/creator-onboard/internal/fetch"
	"github.com/averyk/creator-onboard/internal/types"
)

// maxPages caps how many result pages are fetched per search.
const maxPages = 3

// Searcher looks up a creator's public pages and distills them into a
// partial field map.
type Searcher struct {
	svc     *customsearch.Service
	cx      string
	fetcher func(ctx context.Context, url string) (*fetch.Result, error)
}

// NewSearcher creates a Searcher backed by Google Custom Search.
func NewSearcher(ctx context.Context, apiKey, cx string) (*Searcher, error) {
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Searcher{
		svc: svc,
		cx:  cx,
		fetcher: func(ctx context.Context, url string) (*fetch.Result, error) {
			return fetch.URL(ctx, url, nil)
		},
	}, nil
}

// Search runs the enrichment lookup. It fails with SearchError on provider or
// network trouble and NotFoundError when nothing usable turns up.
func (s *Searcher) Search(ctx context.Context, query string, kind types.SearchKind) (types.Partial, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return types.Partial{}, &SearchError{Query: query, Message: "empty query"}
	}

	urls, err := s.findPages(ctx, query, kind)
	if err != nil {
		return types.Partial{}, err
	}
	if len(urls) == 0 {
		return types.Partial{}, &NotFoundError{Query: query}
	}

	partials := s.fetchSignals(ctx, urls)
	if len(partials) == 0 {
		return types.Partial{}, &NotFoundError{Query: query}
	}

	combined := CombineSignals(partials)
	if combined.IsZero() {
		return types.Partial{}, &NotFoundError{Query: query}
	}
	return combined, nil
}

// findPages queries Custom Search with a kind-specific query shape.
func (s *Searcher) findPages(ctx context.Context, query string, kind types.SearchKind) ([]string, error) {
	var q string
	switch kind {
	case types.SearchByHandle:
		q = fmt.Sprintf("%q social media creator profile", query)
	case types.SearchByWebsite:
		q = fmt.Sprintf("site:%s about", strings.TrimPrefix(strings.TrimPrefix(query, "https://"), "http://"))
	default:
		q = fmt.Sprintf("%q content creator", query)
	}

	resp, err := s.svc.Cse.List().Cx(s.cx).Q(q).Num(maxPages).Context(ctx).Do()
	if err != nil {
		return nil, &SearchError{Query: query, Message: "search request failed", Cause: err}
	}

	urls := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.Link != "" {
			urls = append(urls, item.Link)
		}
	}
	return urls, nil
}

// fetchSignals pulls the result pages in parallel and extracts signals from
// each. Individual page failures are tolerated; one readable page is enough.
func (s *Searcher) fetchSignals(ctx context.Context, urls []string) []types.Partial {
	var (
		mu       sync.Mutex
		partials []types.Partial
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, pageURL := range urls {
		g.Go(func() error {
			result, err := s.fetcher(gctx, pageURL)
			if err != nil {
				return nil // skip unreachable pages
			}
			text, err := docparse.ExtractHTMLText([]byte(result.Body))
			if err != nil || text == "" {
				return nil
			}
			partial := ExtractSignals(text, pageURL)
			if partial.IsZero() {
				return nil
			}
			mu.Lock()
			partials = append(partials, partial)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; they skip bad pages

	return partials
}
