package search

import (
	"context"
	"encoding/json"
	"fmt"
	"homefinder/internal/filters"
	"homefinder/internal/models"
	"homefinder/internal/projection"
	"strconv"
	"time"

	"github.com/meilisearch/meilisearch-go"
	"github.com/shopspring/decimal"
)

const primaryKey = "property_id"

// SearchClient mirrors projected listings into a Meilisearch index.
type SearchClient struct {
	client  *meilisearch.Client
	index   string
	breaker *CircuitBreaker
}

// PropertySource provides the listings a reindex copies from
type PropertySource interface {
	ListProperties(ctx context.Context, f filters.PropertyFilters) ([]models.Property, error)
}

func NewSearchClient(host, apiKey, index string) *SearchClient {
	client := meilisearch.NewClient(meilisearch.ClientConfig{
		Host:   host,
		APIKey: apiKey,
	})

	if index == "" {
		index = "properties"
	}

	return &SearchClient{
		client:  client,
		index:   index,
		breaker: NewCircuitBreaker(5, time.Minute),
	}
}

// Healthy reports whether the Meilisearch server answers
func (s *SearchClient) Healthy() bool {
	return s.client.IsHealthy()
}

// InitIndex creates the index and declares the searchable and filterable attributes.
// No ranking rules are configured.
func (s *SearchClient) InitIndex() error {
	// Create index if it doesn't exist
	_, err := s.client.CreateIndex(&meilisearch.IndexConfig{
		Uid:        s.index,
		PrimaryKey: primaryKey,
	})
	// An existing index only fails the queued task, not the call
	if err != nil {
		return err
	}

	_, err = s.client.Index(s.index).UpdateSearchableAttributes(&[]string{
		"title",
		"description",
		"location",
		"type_name",
	})
	if err != nil {
		return err
	}

	filterable := append([]string{"type_id", "user_id"}, filterableColumns...)
	_, err = s.client.Index(s.index).UpdateFilterableAttributes(&filterable)
	return err
}

// IndexProperty adds or replaces a single listing
func (s *SearchClient) IndexProperty(record projection.PropertyRecord) error {
	return s.breaker.guard(func() error {
		_, err := s.client.Index(s.index).AddDocuments([]projection.PropertyRecord{record}, primaryKey)
		return err
	})
}

// IndexProperties adds or replaces multiple listings
func (s *SearchClient) IndexProperties(records []projection.PropertyRecord) error {
	if len(records) == 0 {
		return nil
	}
	_, err := s.client.Index(s.index).AddDocuments(records, primaryKey)
	return err
}

// DeleteProperty removes a listing from the index
func (s *SearchClient) DeleteProperty(id int64) error {
	return s.breaker.guard(func() error {
		_, err := s.client.Index(s.index).DeleteDocument(strconv.FormatInt(id, 10))
		return err
	})
}

// BreakerStatus reports whether mirror writes are currently suspended
func (s *SearchClient) BreakerStatus() BreakerStatus {
	return s.breaker.GetStatus()
}

// ReplaceAll empties the index and loads records. Index tasks run in order,
// so the delete always lands before the additions.
func (s *SearchClient) ReplaceAll(records []projection.PropertyRecord) error {
	if _, err := s.client.Index(s.index).DeleteAllDocuments(); err != nil {
		return err
	}
	return s.IndexProperties(records)
}

// Reindex rebuilds the index from src and returns the number of listings queued.
func (s *SearchClient) Reindex(ctx context.Context, src PropertySource) (int, error) {
	properties, err := src.ListProperties(ctx, filters.PropertyFilters{})
	if err != nil {
		return 0, fmt.Errorf("failed to load properties: %w", err)
	}
	if err := s.ReplaceAll(projection.Properties(properties)); err != nil {
		s.breaker.RecordFailure()
		return 0, fmt.Errorf("failed to replace index contents: %w", err)
	}
	// A full rebuild supersedes any skipped mirror writes
	s.breaker.RecordSuccess()
	return len(properties), nil
}

// parsePropertyFromHit converts a search hit back into a record.
// Meilisearch returns numbers as floats, so price is re-rendered with two places.
func parsePropertyFromHit(hit interface{}) (projection.PropertyRecord, error) {
	var record projection.PropertyRecord

	hitJSON, err := json.Marshal(hit)
	if err != nil {
		return record, err
	}
	if err := json.Unmarshal(hitJSON, &record); err != nil {
		return record, err
	}

	if record.Price != "" {
		price, err := decimal.NewFromString(record.Price.String())
		if err != nil {
			return record, err
		}
		record.Price = projection.Price(price)
	}

	return record, nil
}
