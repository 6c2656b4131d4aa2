package product

import "time"

// Product is an item promoted on the marketing site. AffiliateURL is
// optional; when set it must be an absolute http(s) URL.
type Product struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description"`
	PriceCents   int64     `db:"price_cents" json:"price_cents"`
	ImageURL     string    `db:"image_url" json:"image_url"`
	AffiliateURL string    `db:"affiliate_url" json:"affiliate_url"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

type ProductRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	PriceCents   int64  `json:"price_cents" validate:"gte=0"`
	ImageURL     string `json:"image_url"`
	AffiliateURL string `json:"affiliate_url"`
}
