package api

import (
	"context"
	"fmt"

	"github.com/HydrologicEngineeringCenter/cwms-go/internal/metrics"
)

// GetPages makes a GET request and transparently follows next-page cursors,
// concatenating the selector array of every page in order. The merged
// document keeps the first page's metadata with the cursor fields removed.
//
// A cursor that repeats means the server is looping; GetPages fails with a
// ProtocolError rather than fetching forever.
func (s *Session) GetPages(ctx context.Context, selector, endpoint string, query *Query, version int) (map[string]any, error) {
	if query == nil {
		query = NewQuery()
	}
	seen := map[string]bool{}
	var merged map[string]any

	for {
		page, err := s.Get(ctx, endpoint, query, version)
		if err != nil {
			return nil, err
		}
		metrics.Metrics.APIPagesTotal.WithLabelValues(endpoint).Inc()

		if merged == nil {
			merged = page
		} else {
			prev, ok := merged[selector].([]any)
			if !ok {
				return nil, &ProtocolError{
					URL:    s.buildURL(endpoint, query.Values()),
					Reason: fmt.Sprintf("paged response is missing the %q array", selector),
				}
			}
			next, _ := page[selector].([]any)
			merged[selector] = append(prev, next...)
		}

		cursor, _ := page["next-page"].(string)
		if cursor == "" {
			break
		}
		if seen[cursor] {
			return nil, &ProtocolError{
				URL:    s.buildURL(endpoint, query.Values()),
				Reason: fmt.Sprintf("pagination cursor %q repeated", cursor),
			}
		}
		seen[cursor] = true
		query.Set("page", cursor)
	}

	delete(merged, "next-page")
	return merged, nil
}
