package models

import (
	"time"

	"github.com/lib/pq"
)

// Product represents a catalog entry the bot can surface in search results.
// Fields are tagged for both DB scanning and JSON serialization.
type Product struct {
	ID          int64          `db:"id" json:"id"`
	Name        string         `db:"name" json:"name"`
	Description string         `db:"description" json:"description"`
	Price       float64        `db:"price" json:"price"`
	MRP         float64        `db:"mrp" json:"mrp"`
	Rating      float64        `db:"rating" json:"rating"`
	Image       string         `db:"image" json:"image,omitempty"`
	ProductLink string         `db:"product_link" json:"productLink,omitempty"`
	BuyLink     string         `db:"buy_link" json:"buyLink"`
	Keywords    pq.StringArray `db:"keywords" json:"keywords"`
	CreatedAt   time.Time      `db:"created_at" json:"-"`
}
