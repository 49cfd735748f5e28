package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/repository"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

func newCatalogFixture() (*CatalogService, *repository.MemoryCatalogStore, *repository.MemoryDealStore) {
	products := repository.NewMemoryCatalogStore()
	deals := repository.NewMemoryDealStore()
	return NewCatalogService(products, deals), products, deals
}

func TestAddProductAssignsID(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	p1, err := svc.AddProduct(ctx, &CreateProductRequest{
		Name: "Trimmer", BuyLink: "https://example.com/1", Keywords: []string{"trimmer"},
	})
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	p2, err := svc.AddProduct(ctx, &CreateProductRequest{
		Name: "Kettle", BuyLink: "https://example.com/2", Keywords: []string{"kettle"},
	})
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	if p1.ID == 0 || p2.ID == 0 {
		t.Fatal("AddProduct left id unassigned")
	}
	if p1.ID == p2.ID {
		t.Errorf("duplicate product ids: %d", p1.ID)
	}
}

func TestAddProductValidation(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateProductRequest
	}{
		{"missing name", CreateProductRequest{BuyLink: "x", Keywords: []string{"k"}}},
		{"missing buy link", CreateProductRequest{Name: "X", Keywords: []string{"k"}}},
		{"negative price", CreateProductRequest{Name: "X", BuyLink: "x", Price: -1, Keywords: []string{"k"}}},
		{"no keywords", CreateProductRequest{Name: "X", BuyLink: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.AddProduct(ctx, &tt.req); err == nil {
				t.Error("AddProduct accepted invalid request")
			}
		})
	}
}

func TestRemoveProductReportsExistence(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	p, err := svc.AddProduct(ctx, &CreateProductRequest{
		Name: "Mouse", BuyLink: "https://example.com", Keywords: []string{"mouse"},
	})
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}

	removed, err := svc.RemoveProduct(ctx, p.ID)
	if err != nil || !removed {
		t.Fatalf("RemoveProduct(%d) = (%v, %v), want (true, nil)", p.ID, removed, err)
	}

	removed, err = svc.RemoveProduct(ctx, p.ID)
	if err != nil || removed {
		t.Fatalf("second RemoveProduct(%d) = (%v, %v), want (false, nil)", p.ID, removed, err)
	}
}

func TestGetProductAfterRemovalIsNotFound(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	p, err := svc.AddProduct(ctx, &CreateProductRequest{
		Name: "Lamp", BuyLink: "https://example.com", Keywords: []string{"lamp"},
	})
	if err != nil {
		t.Fatalf("AddProduct: %v", err)
	}
	if _, err := svc.RemoveProduct(ctx, p.ID); err != nil {
		t.Fatalf("RemoveProduct: %v", err)
	}

	if _, err := svc.GetProduct(ctx, p.ID); !errors.Is(err, utils.ErrProductNotFound) {
		t.Errorf("GetProduct after removal = %v, want ErrProductNotFound", err)
	}
}

func TestReplaceDealsIsWholesale(t *testing.T) {
	svc, _, _ := newCatalogFixture()
	ctx := context.Background()

	first := []models.Deal{
		{Name: "Deal A", BuyLink: "x"},
		{Name: "Deal B", BuyLink: "x"},
	}
	if err := svc.ReplaceDeals(ctx, first); err != nil {
		t.Fatalf("ReplaceDeals: %v", err)
	}

	second := []models.Deal{{Name: "Deal C", BuyLink: "x"}}
	if err := svc.ReplaceDeals(ctx, second); err != nil {
		t.Fatalf("ReplaceDeals: %v", err)
	}

	deals := svc.ListDeals(ctx)
	if len(deals) != 1 || deals[0].Name != "Deal C" {
		t.Errorf("deals after replace = %+v, want only Deal C", deals)
	}
}

// failingCatalogStore simulates a broken catalog backend.
type failingCatalogStore struct{}

func (failingCatalogStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	return nil, errors.New("corrupt file")
}
func (failingCatalogStore) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return nil, errors.New("corrupt file")
}
func (failingCatalogStore) AppendProduct(ctx context.Context, p *models.Product) error {
	return errors.New("corrupt file")
}
func (failingCatalogStore) RemoveProduct(ctx context.Context, id int64) (bool, error) {
	return false, errors.New("corrupt file")
}

func TestListProductsDegradesToEmptyOnFailure(t *testing.T) {
	svc := NewCatalogService(failingCatalogStore{}, repository.NewMemoryDealStore())
	if got := svc.ListProducts(context.Background()); len(got) != 0 {
		t.Errorf("broken store returned %d products, want 0", len(got))
	}
}
