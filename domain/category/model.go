package category

import "time"

type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required"`
}
