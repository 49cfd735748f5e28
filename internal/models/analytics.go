package models

import "time"

// QueryStatus tracks whether a logged search led to a product selection.
type QueryStatus string

const (
	QueryStatusPending QueryStatus = "Pending"
	QueryStatusSuccess QueryStatus = "Success"
)

// QueryRecord is an append-only log entry for a user's free-text search.
type QueryRecord struct {
	ID        int64       `db:"id" json:"id"`
	ChatID    int64       `db:"chat_id" json:"chatId"`
	Query     string      `db:"query" json:"query"`
	Status    QueryStatus `db:"status" json:"status"`
	CreatedAt time.Time   `db:"created_at" json:"timestamp"`
}

// AnalyticsSnapshot is the aggregate view the admin dashboard reads.
type AnalyticsSnapshot struct {
	Queries      []QueryRecord   `json:"queries"`
	Traffic      int64           `json:"traffic"`
	ProductViews map[int64]int64 `json:"productViews"`
}
