package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/shopmate/shopmate-bot/internal/models"
)

// QueryRepository handles the append-only query log and the traffic counter.
type QueryRepository struct {
	db *sqlx.DB
}

// NewQueryRepository creates a new QueryRepository.
func NewQueryRepository(db *sqlx.DB) *QueryRepository {
	return &QueryRepository{db: db}
}

// AppendQuery logs a search and bumps the traffic counter in the same
// transaction, keeping traffic equal to the number of records ever appended.
func (r *QueryRepository) AppendQuery(ctx context.Context, rec *models.QueryRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insert = `
        INSERT INTO queries (chat_id, query, status)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`
	rec.Status = models.QueryStatusPending
	if err := tx.QueryRowxContext(ctx, insert, rec.ChatID, rec.Query, rec.Status).
		Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `UPDATE stats SET traffic = traffic + 1 WHERE id = 1`); err != nil {
		return err
	}

	return tx.Commit()
}

// MarkSuccess flips a logged query from Pending to Success. Missing ids are
// a no-op: the record may predate a data reset and selection must not fail
// because of it.
func (r *QueryRepository) MarkSuccess(ctx context.Context, id int64) error {
	const q = `UPDATE queries SET status = $2 WHERE id = $1 AND status = $3`
	_, err := r.db.ExecContext(ctx, q, id, models.QueryStatusSuccess, models.QueryStatusPending)
	return err
}

// ListQueries returns the full query log, newest first.
func (r *QueryRepository) ListQueries(ctx context.Context) ([]models.QueryRecord, error) {
	const q = `SELECT * FROM queries ORDER BY id DESC`
	var recs []models.QueryRecord
	if err := r.db.SelectContext(ctx, &recs, q); err != nil {
		return nil, err
	}
	return recs, nil
}

// Traffic returns the aggregate traffic counter.
func (r *QueryRepository) Traffic(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.GetContext(ctx, &n, `SELECT traffic FROM stats WHERE id = 1`)
	return n, err
}
