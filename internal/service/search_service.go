package service

import (
	"context"
	"strings"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// maxSearchResults caps how many matches a single search returns.
const maxSearchResults = 5

// SearchService matches free-text input against product keywords.
type SearchService struct {
	catalog *CatalogService
}

// NewSearchService constructs a SearchService.
func NewSearchService(catalog *CatalogService) *SearchService {
	return &SearchService{catalog: catalog}
}

// Search returns the first products, in catalog order, with at least one
// keyword containing the lowercased input as a substring. The direction
// matters: a short query matches a longer keyword, but a query longer than
// every keyword matches nothing. No ranking, no tokenization; results are
// truncated at five.
func (s *SearchService) Search(ctx context.Context, text string) []models.Product {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return nil
	}

	var matches []models.Product
	for _, p := range s.catalog.ListProducts(ctx) {
		for _, kw := range p.Keywords {
			if strings.Contains(strings.ToLower(kw), needle) {
				matches = append(matches, p)
				break
			}
		}
		if len(matches) == maxSearchResults {
			break
		}
	}
	return matches
}
