package domain

import "time"

type Product struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	Price       int64     `db:"price" json:"price"`
	Category    string    `db:"category" json:"category"`
	ImageUrl    string    `db:"image_url" json:"image_url"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// ProductPrice is the answer of the price oracle endpoint: the current
// authoritative unit price in minor currency units.
type ProductPrice struct {
	ProductID int64 `json:"product_id"`
	Price     int64 `json:"price"`
}
