package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table     string
	ID        string
	Title     string
	Author    string
	ISBN      string
	Category  string
	Year      string
	Photo     string
	CreatedAt string
}

// Books is the schema definition for the books table
var Books = BooksTable{
	Table:     "books",
	ID:        "id",
	Title:     "title",
	Author:    "author",
	ISBN:      "isbn",
	Category:  "category",
	Year:      "year",
	Photo:     "photo",
	CreatedAt: "created_at",
}

// Columns returns all standard column names
func (t BooksTable) Columns() []string {
	return []string{
		t.ID, t.Title, t.Author, t.ISBN, t.Category, t.Year, t.Photo, t.CreatedAt,
	}
}

// BookCopiesTable represents the 'book_copies' table
type BookCopiesTable struct {
	Table    string
	ID       string
	BookID   string
	Status   string
	Location string
	AddedAt  string
}

// BookCopies is the schema definition for the book_copies table
var BookCopies = BookCopiesTable{
	Table:    "book_copies",
	ID:       "id",
	BookID:   "book_id",
	Status:   "status",
	Location: "location",
	AddedAt:  "added_at",
}

// Columns returns all standard column names
func (t BookCopiesTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Status, t.Location, t.AddedAt}
}
