package service

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/repository"
)

func newSearchFixture(t *testing.T, products ...models.Product) (*SearchService, *repository.MemoryCatalogStore) {
	t.Helper()
	store := repository.NewMemoryCatalogStore()
	for i := range products {
		if err := store.AppendProduct(context.Background(), &products[i]); err != nil {
			t.Fatalf("seed product: %v", err)
		}
	}
	catalog := NewCatalogService(store, repository.NewMemoryDealStore())
	return NewSearchService(catalog), store
}

func TestSearchMatchesKeywordContainingInput(t *testing.T) {
	svc, _ := newSearchFixture(t, models.Product{
		Name: "Legion 5", BuyLink: "https://example.com/buy",
		Keywords: []string{"gaming laptop", "laptop"},
	})

	got := svc.Search(context.Background(), "gaming laptop")
	if len(got) != 1 {
		t.Fatalf("Search returned %d products, want 1", len(got))
	}

	// The match direction is keyword-contains-input. A query longer than
	// every keyword must not match.
	got = svc.Search(context.Background(), "gaming laptops")
	if len(got) != 0 {
		t.Fatalf("Search(%q) returned %d products, want 0", "gaming laptops", len(got))
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	svc, _ := newSearchFixture(t, models.Product{
		Name: "Buds Pro", BuyLink: "https://example.com/buy",
		Keywords: []string{"Wireless Earbuds"},
	})

	for _, q := range []string{"WIRELESS", "wireless", "EarBuds"} {
		if got := svc.Search(context.Background(), q); len(got) != 1 {
			t.Errorf("Search(%q) returned %d products, want 1", q, len(got))
		}
	}
}

func TestSearchTruncatesToFiveInCatalogOrder(t *testing.T) {
	var products []models.Product
	for i := 0; i < 8; i++ {
		products = append(products, models.Product{
			Name:     fmt.Sprintf("Phone %d", i+1),
			BuyLink:  "https://example.com/buy",
			Keywords: []string{"phone"},
		})
	}
	svc, _ := newSearchFixture(t, products...)

	got := svc.Search(context.Background(), "phone")
	if len(got) != 5 {
		t.Fatalf("Search returned %d products, want 5", len(got))
	}
	for i, p := range got {
		if want := fmt.Sprintf("Phone %d", i+1); p.Name != want {
			t.Errorf("result %d = %q, want %q (catalog order)", i, p.Name, want)
		}
	}
}

func TestSearchEveryResultHasMatchingKeyword(t *testing.T) {
	svc, _ := newSearchFixture(t,
		models.Product{Name: "A", BuyLink: "x", Keywords: []string{"usb cable", "charger"}},
		models.Product{Name: "B", BuyLink: "x", Keywords: []string{"trimmer"}},
		models.Product{Name: "C", BuyLink: "x", Keywords: []string{"usb hub"}},
	)

	got := svc.Search(context.Background(), "usb")
	if len(got) != 2 {
		t.Fatalf("Search returned %d products, want 2", len(got))
	}
	for _, p := range got {
		matched := false
		for _, kw := range p.Keywords {
			if strings.Contains(strings.ToLower(kw), "usb") {
				matched = true
			}
		}
		if !matched {
			t.Errorf("product %q returned without a matching keyword", p.Name)
		}
	}
}

func TestSearchEmptyAndUnmatchedInput(t *testing.T) {
	svc, _ := newSearchFixture(t, models.Product{
		Name: "X", BuyLink: "x", Keywords: []string{"mixer"},
	})

	if got := svc.Search(context.Background(), "   "); len(got) != 0 {
		t.Errorf("blank input returned %d products, want 0", len(got))
	}
	if got := svc.Search(context.Background(), "telescope"); len(got) != 0 {
		t.Errorf("unmatched input returned %d products, want 0", len(got))
	}
}
