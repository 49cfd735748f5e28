package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// DealRepository handles data access for the today's-deals list.
type DealRepository struct {
	db *sqlx.DB
}

// NewDealRepository creates a new DealRepository.
func NewDealRepository(db *sqlx.DB) *DealRepository {
	return &DealRepository{db: db}
}

// ListDeals returns the current deal list in stored order.
func (r *DealRepository) ListDeals(ctx context.Context) ([]models.Deal, error) {
	const q = `SELECT * FROM deals ORDER BY position`
	var deals []models.Deal
	if err := r.db.SelectContext(ctx, &deals, q); err != nil {
		return nil, err
	}
	return deals, nil
}

// ReplaceDeals swaps the entire deal list in one transaction. The deal list
// is replaced, never merged, on each admin update.
func (r *DealRepository) ReplaceDeals(ctx context.Context, deals []models.Deal) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM deals`); err != nil {
		return err
	}

	const q = `
        INSERT INTO deals (position, name, description, category, price, mrp, rating, image, product_link, buy_link)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	for i, d := range deals {
		if _, err := tx.ExecContext(ctx, q,
			i+1, d.Name, d.Description, d.Category, d.Price, d.MRP, d.Rating, d.Image, d.ProductLink, d.BuyLink,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}
