package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// HTTPLikeStore applies like mutations against the backend's document
// endpoint. The document id is part of the URL, so setting the same like
// twice overwrites one document and the backend's counters stay correct.
type HTTPLikeStore struct {
	*httpClient
}

// NewHTTPLikeStore creates a like store client for the given API base URL.
func NewHTTPLikeStore(baseURL, token string, requestsPerMinute int) *HTTPLikeStore {
	return &HTTPLikeStore{httpClient: newHTTPClient(baseURL, token, requestsPerMinute)}
}

// Apply sets or removes the like document for the mutation.
// A 404 on removal counts as success: the document is already gone.
func (s *HTTPLikeStore) Apply(ctx context.Context, m LikeMutation) error {
	endpoint := fmt.Sprintf("%s/likes/%s", s.baseURL, url.PathEscape(m.DocID))

	if m.Liked {
		if err := s.do(ctx, http.MethodPut, endpoint, m, nil); err != nil {
			return fmt.Errorf("set like %s: %w", m.DocID, err)
		}
		return nil
	}

	err := s.do(ctx, http.MethodDelete, endpoint, nil, nil)
	if err != nil {
		var statusErr *StatusError
		if errors.As(err, &statusErr) && statusErr.Code == http.StatusNotFound {
			return nil
		}
		return fmt.Errorf("remove like %s: %w", m.DocID, err)
	}
	return nil
}
