package remote

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/asteroid-belt/repcache/internal/config"
	"github.com/asteroid-belt/repcache/internal/testutil"
)

// Integration test against a real backend. Requires RUN_NETWORK_TESTS=1
// plus REPCACHE_API_URL (and REPCACHE_AUTH_TOKEN for authenticated
// deployments).

func TestIntegrationFetchFirstPage(t *testing.T) {
	testutil.SkipNetworkTests(t)

	baseURL := os.Getenv("REPCACHE_API_URL")
	if baseURL == "" {
		baseURL = config.DefaultAPIBaseURL
	}
	client := NewHTTPCatalog(baseURL, os.Getenv("REPCACHE_AUTH_TOKEN"), 0)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := client.FetchPage(ctx, 10, 0)
	if err != nil {
		t.Fatalf("FetchPage failed: %v", err)
	}
	if len(records) == 0 {
		t.Fatal("expected a non-empty first page from the live catalog")
	}
	for _, r := range records {
		if r.ID == "" {
			t.Errorf("record %q has empty id", r.Name)
		}
	}
}
