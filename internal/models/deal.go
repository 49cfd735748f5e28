package models

import "math"

// Deal is a curated "today's deals" entry. The deal list is replaced
// wholesale on every admin update, so deals carry no stable identity beyond
// their position in the list.
type Deal struct {
	Position    int     `db:"position" json:"-"`
	Name        string  `db:"name" json:"name"`
	Description string  `db:"description" json:"description"`
	Category    string  `db:"category" json:"category"`
	Price       float64 `db:"price" json:"price"`
	MRP         float64 `db:"mrp" json:"mrp"`
	Rating      float64 `db:"rating" json:"rating"`
	Image       string  `db:"image" json:"image,omitempty"`
	ProductLink string  `db:"product_link" json:"productLink,omitempty"`
	BuyLink     string  `db:"buy_link" json:"buyLink"`
}

// DiscountPercent returns the displayed discount, rounded to the nearest
// whole percent. A non-positive MRP yields 0 rather than a division error.
func (d *Deal) DiscountPercent() int {
	if d.MRP <= 0 {
		return 0
	}
	return int(math.Round((d.MRP - d.Price) / d.MRP * 100))
}
