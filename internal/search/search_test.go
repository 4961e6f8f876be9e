package search

import (
	"context"
	"encoding/json"
	"homefinder/internal/filters"
	"homefinder/internal/models"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int { return &n }

func TestBuildFilter(t *testing.T) {
	typeID := int64(3)
	zeroID := int64(0)
	minPrice := decimal.RequireFromString("100000.50")
	zeroPrice := decimal.Zero

	tests := []struct {
		name    string
		filters filters.PropertyFilters
		want    string
	}{
		{"no criteria", filters.PropertyFilters{}, ""},
		{"zero values skipped", filters.PropertyFilters{TypeID: &zeroID, MinBeds: intPtr(0), MaxPrice: &zeroPrice}, ""},
		{"single bound", filters.PropertyFilters{MinBeds: intPtr(2)}, "num_bedrooms >= 2"},
		{
			name: "combined",
			filters: filters.PropertyFilters{
				TypeID:    &typeID,
				MaxBeds:   intPtr(4),
				MinGarage: intPtr(-1),
				MinPrice:  &minPrice,
			},
			want: "type_id = 3 AND num_bedrooms <= 4 AND num_garage >= -1 AND price >= 100000.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildFilter(tt.filters))
		})
	}
}

func TestParsePropertyFromHit(t *testing.T) {
	hit := map[string]interface{}{
		"property_id":   float64(12),
		"title":         "Loft",
		"price":         float64(99500),
		"location":      "Harbor",
		"num_bedrooms":  float64(1),
		"num_bathrooms": float64(1),
		"num_garage":    float64(0),
		"type_id":       nil,
		"type_name":     nil,
		"created_at":    "2024-03-01T09:30:00Z",
	}

	record, err := parsePropertyFromHit(hit)
	require.NoError(t, err)
	assert.Equal(t, int64(12), record.PropertyID)
	assert.Equal(t, "Loft", record.Title)
	assert.Equal(t, json.Number("99500.00"), record.Price)
	assert.Nil(t, record.TypeID)
	assert.Equal(t, "2024-03-01T09:30:00Z", record.CreatedAt)
}

// fakeMeilisearch records requests and answers like a Meilisearch server.
type fakeMeilisearch struct {
	mu       sync.Mutex
	requests []string
	bodies   map[string][]byte
}

func newFakeMeilisearch(t *testing.T) (*fakeMeilisearch, *SearchClient) {
	t.Helper()
	fake := &fakeMeilisearch{bodies: map[string][]byte{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)
	return fake, NewSearchClient(server.URL, "", "")
}

func (f *fakeMeilisearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	key := r.Method + " " + r.URL.Path

	f.mu.Lock()
	f.requests = append(f.requests, key)
	f.bodies[key] = body
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if r.URL.Path == "/indexes/properties/search" {
		w.WriteHeader(http.StatusOK)
		io.WriteString(w, `{
			"hits": [
				{"property_id": 1, "title": "Lake house", "price": 250000.5, "location": "North",
				 "num_bedrooms": 3, "num_bathrooms": 2, "num_garage": 1, "type_id": 1,
				 "type_name": "House", "created_at": "2024-01-02T03:04:05Z"}
			],
			"query": "lake",
			"limit": 20,
			"offset": 0,
			"estimatedTotalHits": 1,
			"processingTimeMs": 1
		}`)
		return
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"taskUid":    1,
		"indexUid":   "properties",
		"status":     "enqueued",
		"type":       "documentAdditionOrUpdate",
		"enqueuedAt": time.Now().UTC().Format(time.RFC3339),
	})
}

func TestFilterSearch(t *testing.T) {
	fake, client := newFakeMeilisearch(t)

	records, err := client.FilterSearch(FilterParams{
		Query:   "lake",
		Filters: filters.PropertyFilters{MinBeds: intPtr(2)},
	})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Lake house", records[0].Title)
	assert.Equal(t, json.Number("250000.50"), records[0].Price)

	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(fake.bodies["POST /indexes/properties/search"], &req))
	assert.Equal(t, "lake", req["q"])
	assert.Equal(t, "num_bedrooms >= 2", req["filter"])
}

type staticSource []models.Property

func (s staticSource) ListProperties(ctx context.Context, f filters.PropertyFilters) ([]models.Property, error) {
	return s, nil
}

func TestReindexReplacesDocuments(t *testing.T) {
	fake, client := newFakeMeilisearch(t)

	source := staticSource{
		{ID: 1, Title: "One", Price: decimal.RequireFromString("10")},
		{ID: 2, Title: "Two", Price: decimal.RequireFromString("20")},
	}
	n, err := client.Reindex(context.Background(), source)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []string{
		"DELETE /indexes/properties/documents",
		"POST /indexes/properties/documents",
	}, fake.requests)

	var docs []map[string]interface{}
	require.NoError(t, json.Unmarshal(fake.bodies["POST /indexes/properties/documents"], &docs))
	require.Len(t, docs, 2)
	assert.Equal(t, "Two", docs[1]["title"])
	assert.Equal(t, 20.0, docs[1]["price"])
}
