package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPCatalog_FetchPage(t *testing.T) {
	var gotPath, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode([]ExerciseRecord{
			{ID: "ex1", Name: "Barbell Squat", BodyPart: "Legs", Equipment: "Barbell", Target: "Quads"},
			{ID: "ex2", Name: "Bench Press", BodyPart: "Chest", Equipment: "Barbell", Target: "Pectorals"},
		})
	}))
	defer server.Close()

	client := NewHTTPCatalog(server.URL, "test-token", 0)
	records, err := client.FetchPage(context.Background(), 50, 100)
	require.NoError(t, err)

	assert.Equal(t, "/exercises?limit=50&offset=100", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	require.Len(t, records, 2)
	assert.Equal(t, "ex1", records[0].ID)
	assert.Equal(t, "Barbell Squat", records[0].Name)
}

func TestHTTPCatalog_FetchPage_EmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewHTTPCatalog(server.URL, "", 0)
	records, err := client.FetchPage(context.Background(), 50, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHTTPCatalog_FetchPage_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewHTTPCatalog(server.URL, "", 0)
	_, err := client.FetchPage(context.Background(), 50, 0)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.Code)
	assert.Contains(t, statusErr.Body, "upstream exploded")
}

func TestHTTPCatalog_FetchPage_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewHTTPCatalog(server.URL, "", 0)
	_, err := client.FetchPage(ctx, 50, 0)
	require.Error(t, err)
}

func TestExerciseRecord_ToCachedExercise(t *testing.T) {
	record := ExerciseRecord{
		ID:               "ex1",
		Name:             "Barbell Squat",
		BodyPart:         "Legs",
		Equipment:        "Barbell",
		Target:           "Quads",
		GifURL:           "https://cdn.example.com/squat.gif",
		Instructions:     []string{"unrack", "squat"},
		SecondaryMuscles: []string{"Glutes", "Core"},
	}

	cached := record.ToCachedExercise()
	assert.Equal(t, "ex1", cached.ID)
	assert.Equal(t, "Barbell", cached.EquipmentName)
	assert.Equal(t, []string{"unrack", "squat"}, []string(cached.Instructions))
	assert.Equal(t, []string{"Glutes", "Core"}, []string(cached.SecondaryMuscles))
	assert.False(t, cached.IsSavedLocally)
}
