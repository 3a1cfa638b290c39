package schema

// ReviewsTable represents the 'reviews' table
type ReviewsTable struct {
	Table      string
	ID         string
	UserID     string
	BookID     string
	Rating     string
	ReviewText string
	CreatedAt  string
	UpdatedAt  string
}

// Reviews is the schema definition for the reviews table
var Reviews = ReviewsTable{
	Table:      "reviews",
	ID:         "id",
	UserID:     "user_id",
	BookID:     "book_id",
	Rating:     "rating",
	ReviewText: "review_text",
	CreatedAt:  "created_at",
	UpdatedAt:  "updated_at",
}

// Columns returns all standard column names
func (t ReviewsTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.Rating, t.ReviewText, t.CreatedAt, t.UpdatedAt}
}
