package smartsearch

import "fmt"

// SearchError represents a network or provider failure during smart search.
type SearchError struct {
	Query   string
	Message string
	Cause   error
}

func (e *SearchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("smart search failed for %q: %s: %v", e.Query, e.Message, e.Cause)
	}
	return fmt.Sprintf("smart search failed for %q: %s", e.Query, e.Message)
}

func (e *SearchError) Unwrap() error {
	return e.Cause
}

// NotFoundError indicates that the search ran but found nothing usable.
type NotFoundError struct {
	Query string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no results found for %q", e.Query)
}
