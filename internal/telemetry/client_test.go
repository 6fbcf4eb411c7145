package telemetry

import (
	"testing"
)

func TestIsEnabled(t *testing.T) {
	savedKey := PostHogAPIKey
	defer func() { PostHogAPIKey = savedKey }()

	tests := []struct {
		name   string
		apiKey string
		envVal string
		want   bool
	}{
		{"no api key", "", "", false},
		{"key set, default opt-in", "phc_test", "", true},
		{"explicit opt-out", "phc_test", "false", false},
		{"opt-out without key", "", "false", false},
		{"non-false value keeps it on", "phc_test", "true", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			PostHogAPIKey = tt.apiKey
			t.Setenv("REPCACHE_TELEMETRY_TRACKING_ENABLED", tt.envVal)

			if got := IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	savedKey := PostHogAPIKey
	defer func() { PostHogAPIKey = savedKey }()
	PostHogAPIKey = ""

	client := New(nil)
	if _, ok := client.(*noopClient); !ok {
		t.Fatalf("New() with telemetry disabled = %T, want *noopClient", client)
	}

	// No-op client must be safe to use everywhere a real one is.
	client.Track("test_event", map[string]interface{}{"key": "value"})
	client.TrackAppStarted("cli", true, 100)
	client.TrackLikeToggled("POST", true)
	client.Close()

	if id := client.GetTrackingID(); id != "" {
		t.Errorf("GetTrackingID() = %q, want empty for noop client", id)
	}
}

type fixedProvider struct{ id string }

func (p fixedProvider) GetOrCreateTrackingID() string { return p.id }

func TestNew_UsesProviderTrackingID(t *testing.T) {
	savedKey := PostHogAPIKey
	defer func() { PostHogAPIKey = savedKey }()
	PostHogAPIKey = ""
	t.Setenv("REPCACHE_TELEMETRY_TRACKING_ENABLED", "false")

	// Disabled clients ignore the provider entirely.
	client := New(fixedProvider{id: "stable-id"})
	if id := client.GetTrackingID(); id != "" {
		t.Errorf("GetTrackingID() = %q, want empty when disabled", id)
	}
}
