package remote

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// HTTPCatalog fetches the exercise catalog over the backend's paginated
// REST endpoint: GET {base}/exercises?limit=N&offset=M.
type HTTPCatalog struct {
	*httpClient
}

// NewHTTPCatalog creates a catalog client for the given API base URL.
// The token may be empty for unauthenticated backends.
func NewHTTPCatalog(baseURL, token string, requestsPerMinute int) *HTTPCatalog {
	return &HTTPCatalog{httpClient: newHTTPClient(baseURL, token, requestsPerMinute)}
}

// FetchPage returns one page of exercise records. An empty slice signals
// end-of-data.
func (c *HTTPCatalog) FetchPage(ctx context.Context, limit, offset int) ([]ExerciseRecord, error) {
	endpoint := fmt.Sprintf("%s/exercises?%s", c.baseURL, url.Values{
		"limit":  []string{strconv.Itoa(limit)},
		"offset": []string{strconv.Itoa(offset)},
	}.Encode())

	var records []ExerciseRecord
	if err := c.do(ctx, "GET", endpoint, nil, &records); err != nil {
		return nil, fmt.Errorf("fetch exercises page (offset %d): %w", offset, err)
	}
	return records, nil
}
