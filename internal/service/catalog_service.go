package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/shopmate/shopmate-bot/internal/models"
	"github.com/shopmate/shopmate-bot/internal/repository"
	"github.com/shopmate/shopmate-bot/internal/utils"
)

// CatalogService provides product and deal business logic.
type CatalogService struct {
	products CatalogStore
	deals    DealStore
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(products CatalogStore, deals DealStore) *CatalogService {
	return &CatalogService{products: products, deals: deals}
}

// ListProducts returns the catalog in insertion order. Storage failures are
// logged and degrade to an empty catalog so bot interactions never crash on
// a broken read.
func (s *CatalogService) ListProducts(ctx context.Context) []models.Product {
	products, err := s.products.ListProducts(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read product catalog, degrading to empty")
		return nil
	}
	return products
}

// GetProduct looks up a product by id. A missing id returns
// utils.ErrProductNotFound; a selection that references a deleted product is
// a normal reachable state, not a failure.
func (s *CatalogService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	product, err := s.products.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, utils.ErrProductNotFound
		}
		return nil, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

// CreateProductRequest is the admin payload for adding a product.
type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	MRP         float64  `json:"mrp"`
	Rating      float64  `json:"rating"`
	Image       string   `json:"image"`
	ProductLink string   `json:"productLink"`
	BuyLink     string   `json:"buyLink"`
	Keywords    []string `json:"keywords"`
}

// AddProduct validates and appends a product, returning it with its
// assigned id.
func (s *CatalogService) AddProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, errors.New("name is required")
	}
	if req.BuyLink == "" {
		return nil, errors.New("buyLink is required")
	}
	if req.Price < 0 || req.MRP < 0 {
		return nil, errors.New("price and mrp must not be negative")
	}
	if len(req.Keywords) == 0 {
		return nil, errors.New("at least one keyword is required")
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		MRP:         req.MRP,
		Rating:      req.Rating,
		Image:       req.Image,
		ProductLink: req.ProductLink,
		BuyLink:     req.BuyLink,
		Keywords:    req.Keywords,
	}
	if err := s.products.AppendProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("append product: %w", err)
	}
	return product, nil
}

// RemoveProduct deletes a product by id, reporting whether it existed.
func (s *CatalogService) RemoveProduct(ctx context.Context, id int64) (bool, error) {
	return s.products.RemoveProduct(ctx, id)
}

// ListDeals returns today's deals in stored order, degrading to empty on a
// failed read.
func (s *CatalogService) ListDeals(ctx context.Context) []models.Deal {
	deals, err := s.deals.ListDeals(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to read deals, degrading to empty")
		return nil
	}
	return deals
}

// ReplaceDeals validates and replaces the whole deal list.
func (s *CatalogService) ReplaceDeals(ctx context.Context, deals []models.Deal) error {
	for i := range deals {
		if deals[i].Name == "" {
			return fmt.Errorf("deal %d: name is required", i+1)
		}
		if deals[i].BuyLink == "" {
			return fmt.Errorf("deal %d: buyLink is required", i+1)
		}
		if deals[i].Price < 0 || deals[i].MRP < 0 {
			return fmt.Errorf("deal %d: price and mrp must not be negative", i+1)
		}
	}
	if err := s.deals.ReplaceDeals(ctx, deals); err != nil {
		return fmt.Errorf("replace deals: %w", err)
	}
	return nil
}
