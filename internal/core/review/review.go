package review

import (
	"time"

	"github.com/nlamduy/libris/internal/platform/database/schema"
	"github.com/nlamduy/libris/internal/platform/store"
)

// Review is a member's rating and commentary on a title.
type Review struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"user_id" db:"user_id"`
	BookID     int64      `json:"book_id" db:"book_id"`
	Rating     int        `json:"rating" db:"rating"`
	ReviewText string     `json:"review_text" db:"review_text"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at" db:"updated_at"`
}

// ForCreate is the review payload. UserID always comes from the caller's
// claims and BookID from the URL when posting through the book route.
type ForCreate struct {
	UserID     int64  `json:"-"`
	BookID     int64  `json:"book_id"`
	Rating     int    `json:"rating"`
	ReviewText string `json:"review_text"`
}

// Fields produces the sparse column set for the INSERT.
func (r ForCreate) Fields() store.Fields {
	return store.Fields{}.
		Set(schema.Reviews.UserID, r.UserID).
		Set(schema.Reviews.BookID, r.BookID).
		Set(schema.Reviews.Rating, r.Rating).
		Set(schema.Reviews.ReviewText, r.ReviewText)
}

// ForUpdate is the sparse update payload: nil means "leave untouched".
type ForUpdate struct {
	Rating     *int    `json:"rating"`
	ReviewText *string `json:"review_text"`
}

// Fields produces the sparse column set for the UPDATE.
func (r ForUpdate) Fields() store.Fields {
	fields := store.Fields{}

	if r.Rating != nil {
		fields = fields.Set(schema.Reviews.Rating, *r.Rating)
	}
	if r.ReviewText != nil {
		fields = fields.Set(schema.Reviews.ReviewText, *r.ReviewText)
	}
	if len(fields) > 0 {
		fields = fields.Set(schema.Reviews.UpdatedAt, time.Now().UTC())
	}
	return fields
}

// Global field names for validation
const (
	FieldBookID     = "book_id"
	FieldRating     = "rating"
	FieldReviewText = "review_text"
)
