package repository

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// ViewRepository stores durable per-product view counts. Counter rows are
// created lazily on first view and only ever incremented.
type ViewRepository struct {
	db *sqlx.DB
}

// NewViewRepository creates a new ViewRepository.
func NewViewRepository(db *sqlx.DB) *ViewRepository {
	return &ViewRepository{db: db}
}

// Add increments a product's view count by n, creating the row when absent.
func (r *ViewRepository) Add(ctx context.Context, productID, n int64) error {
	const q = `
        INSERT INTO product_views (product_id, views)
        VALUES ($1, $2)
        ON CONFLICT (product_id) DO UPDATE SET views = product_views.views + EXCLUDED.views`
	_, err := r.db.ExecContext(ctx, q, productID, n)
	return err
}

// All returns every view counter keyed by product id.
func (r *ViewRepository) All(ctx context.Context) (map[int64]int64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT product_id, views FROM product_views`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	views := make(map[int64]int64)
	for rows.Next() {
		var productID, n int64
		if err := rows.Scan(&productID, &n); err != nil {
			return nil, err
		}
		views[productID] = n
	}
	return views, rows.Err()
}
