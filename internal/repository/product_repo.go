package repository

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// ProductRepository handles data access for the product catalog.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ListProducts returns the full catalog in insertion order. Search relies on
// this ordering, so it must stay stable.
func (r *ProductRepository) ListProducts(ctx context.Context) ([]models.Product, error) {
	const q = `SELECT * FROM products ORDER BY id`
	var products []models.Product
	if err := r.db.SelectContext(ctx, &products, q); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns a single product by id, or ErrNotFound when absent.
func (r *ProductRepository) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	var p models.Product
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// AppendProduct inserts a new product and fills in its assigned id.
func (r *ProductRepository) AppendProduct(ctx context.Context, product *models.Product) error {
	const q = `
        INSERT INTO products (name, description, price, mrp, rating, image, product_link, buy_link, keywords)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
        RETURNING id, created_at`

	return r.db.QueryRowxContext(ctx, q,
		product.Name,
		product.Description,
		product.Price,
		product.MRP,
		product.Rating,
		product.Image,
		product.ProductLink,
		product.BuyLink,
		pq.Array([]string(product.Keywords)),
	).Scan(&product.ID, &product.CreatedAt)
}

// RemoveProduct deletes a product by id. It reports whether a row was removed
// so handlers can distinguish 204 from 404.
func (r *ProductRepository) RemoveProduct(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM products WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
