package tag

import "time"

type Tag struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type TagRequest struct {
	Name string `json:"name" validate:"required"`
}
