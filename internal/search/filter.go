package search

import (
	"fmt"
	"homefinder/internal/filters"
	"homefinder/internal/projection"
	"strings"

	"github.com/meilisearch/meilisearch-go"
)

// filterableColumns are the listing columns the filter engine can constrain
var filterableColumns = []string{
	"num_bedrooms",
	"num_bathrooms",
	"num_garage",
	"price",
}

type FilterParams struct {
	Query   string
	Filters filters.PropertyFilters
	Limit   int64
	Offset  int64
}

// BuildFilter renders the active criteria as a Meilisearch filter expression.
// It follows the same zero-skip rules as the relational filter.
func BuildFilter(f filters.PropertyFilters) string {
	preds := f.Predicates()
	if len(preds) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(preds))
	for _, pred := range preds {
		clauses = append(clauses, fmt.Sprintf("%s %s %v", pred.Column, pred.Op, pred.Value))
	}
	return strings.Join(clauses, " AND ")
}

// FilterSearch runs a keyword query restricted by the listing criteria
func (s *SearchClient) FilterSearch(params FilterParams) ([]projection.PropertyRecord, error) {
	// Default limit
	if params.Limit == 0 {
		params.Limit = 20
	}

	searchReq := &meilisearch.SearchRequest{
		Limit:  params.Limit,
		Offset: params.Offset,
	}

	if filterStr := BuildFilter(params.Filters); filterStr != "" {
		searchReq.Filter = filterStr
	}

	searchRes, err := s.client.Index(s.index).Search(params.Query, searchReq)
	if err != nil {
		return nil, err
	}

	records := make([]projection.PropertyRecord, 0, len(searchRes.Hits))
	for _, hit := range searchRes.Hits {
		record, err := parsePropertyFromHit(hit)
		if err != nil {
			continue
		}
		records = append(records, record)
	}

	return records, nil
}
