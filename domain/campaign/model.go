package campaign

import (
	"time"

	"github.com/lib/pq"
)

// Campaign is an email blast built from rich content blocks. The body is
// stored in the same serialized block format as posts and rendered to HTML
// at send time.
type Campaign struct {
	ID         int64          `db:"id" json:"id"`
	Subject    string         `db:"subject" json:"subject"`
	FromEmail  string         `db:"from_email" json:"from_email"`
	Content    string         `db:"content" json:"content"`
	Recipients pq.StringArray `db:"recipients" json:"recipients"`
	Status     string         `db:"status" json:"status"`
	SentAt     *time.Time     `db:"sent_at" json:"sent_at"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at" json:"updated_at"`
}

const (
	StatusDraft   = "draft"
	StatusSending = "sending"
	StatusSent    = "sent"
	StatusFailed  = "failed"
)

type CampaignRequest struct {
	Subject    string   `json:"subject" validate:"required"`
	FromEmail  string   `json:"from_email" validate:"required,email"`
	Content    string   `json:"content" validate:"required"`
	Recipients []string `json:"recipients" validate:"dive,email"`
}

type SendResult struct {
	Sent   int      `json:"sent"`
	Failed []string `json:"failed,omitempty"`
}
