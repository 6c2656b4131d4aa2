package post

import (
	"time"

	"github.com/lib/pq"
)

// Post represents a row of the posts table. Content holds the
// serialized block JSON produced by domain/content.
type Post struct {
	ID             int64          `db:"id" json:"id"`
	Title          string         `db:"title" json:"title"`
	Slug           string         `db:"slug" json:"slug"`
	Excerpt        string         `db:"excerpt" json:"excerpt"`
	Content        string         `db:"content" json:"content"`
	Category       string         `db:"category" json:"category"`
	ImageURL       string         `db:"image_url" json:"image_url"`
	SEOTitle       string         `db:"seo_title" json:"seo_title"`
	SEODescription string         `db:"seo_description" json:"seo_description"`
	SEOKeywords    pq.StringArray `db:"seo_keywords" json:"seo_keywords"`
	Author         string         `db:"author" json:"author"`
	Featured       bool           `db:"featured" json:"featured"`
	Published      bool           `db:"published" json:"published"`
	ShedulePublish *time.Time     `db:"shedule_publish" json:"shedule_publish"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`

	// Tags is loaded from the post_tags join table, not a column.
	Tags []int64 `db:"-" json:"tags"`
}

// PostRequest is the create/update payload. The shedule_publish field
// name is a historical misspelling baked into the wire format.
type PostRequest struct {
	Title          string     `json:"title" validate:"required"`
	Slug           string     `json:"slug"`
	Excerpt        string     `json:"excerpt"`
	Content        string     `json:"content" validate:"required"`
	Category       string     `json:"category"`
	Tags           []int64    `json:"tags"`
	ImageURL       string     `json:"image_url"`
	SEOTitle       string     `json:"seo_title"`
	SEODescription string     `json:"seo_description"`
	SEOKeywords    []string   `json:"seo_keywords"`
	Author         string     `json:"author"`
	Featured       bool       `json:"featured"`
	Published      bool       `json:"published"`
	ShedulePublish *time.Time `json:"shedule_publish"`
}

// PostResponse is returned from create/update.
type PostResponse struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
}

// ListResponse wraps a paginated post listing.
type ListResponse struct {
	Posts  []Post `json:"posts"`
	Total  int    `json:"total"`
	Limit  int    `json:"limit"`
	Offset int    `json:"offset"`
}

// PublicPost is the rendered form served to the public blog page.
type PublicPost struct {
	Title          string         `json:"title"`
	Slug           string         `json:"slug"`
	Excerpt        string         `json:"excerpt"`
	HTML           string         `json:"html"`
	Category       string         `json:"category"`
	ImageURL       string         `json:"image_url"`
	Author         string         `json:"author"`
	SEOTitle       string         `json:"seo_title"`
	SEODescription string         `json:"seo_description"`
	SEOKeywords    pq.StringArray `json:"seo_keywords"`
	PublishedAt    time.Time      `json:"published_at"`
}
