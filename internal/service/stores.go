package service

import (
	"context"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// Store interfaces are defined on the consumer side so services run against
// either the Postgres repositories or the in-memory implementations.

// CatalogStore is the persistence contract for products.
type CatalogStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	AppendProduct(ctx context.Context, product *models.Product) error
	RemoveProduct(ctx context.Context, id int64) (bool, error)
}

// DealStore is the persistence contract for the today's-deals list.
type DealStore interface {
	ListDeals(ctx context.Context) ([]models.Deal, error)
	ReplaceDeals(ctx context.Context, deals []models.Deal) error
}

// QueryStore is the persistence contract for the query log.
type QueryStore interface {
	AppendQuery(ctx context.Context, rec *models.QueryRecord) error
	MarkSuccess(ctx context.Context, id int64) error
	ListQueries(ctx context.Context) ([]models.QueryRecord, error)
	Traffic(ctx context.Context) (int64, error)
}

// ViewStore is the durable per-product view counter table.
type ViewStore interface {
	Add(ctx context.Context, productID, n int64) error
	All(ctx context.Context) (map[int64]int64, error)
}

// ViewCounter is the hot counter that absorbs view increments before they
// are flushed to the ViewStore.
type ViewCounter interface {
	Incr(ctx context.Context, productID int64) error
	Deltas(ctx context.Context) (map[int64]int64, error)
}

// UserStore is the persistence contract for the chat registry.
type UserStore interface {
	Upsert(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
}
