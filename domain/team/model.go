package team

import "time"

// Member is a team member shown on the public about page.
type Member struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Role       string    `db:"role" json:"role"`
	Bio        string    `db:"bio" json:"bio"`
	ImageURL   string    `db:"image_url" json:"image_url"`
	TwitterURL string    `db:"twitter_url" json:"twitter_url"`
	Linkedin   string    `db:"linkedin_url" json:"linkedin_url"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

type MemberRequest struct {
	Name       string `json:"name" validate:"required"`
	Role       string `json:"role"`
	Bio        string `json:"bio"`
	ImageURL   string `json:"image_url"`
	TwitterURL string `json:"twitter_url"`
	Linkedin   string `json:"linkedin_url"`
}
