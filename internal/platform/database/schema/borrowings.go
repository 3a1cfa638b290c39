package schema

// BorrowingsTable represents the 'borrowings' table
type BorrowingsTable struct {
	Table      string
	ID         string
	UserID     string
	BookID     string
	CopyID     string
	BorrowDate string
	DueDate    string
	ReturnDate string
	Status     string
}

// Borrowings is the schema definition for the borrowings table
var Borrowings = BorrowingsTable{
	Table:      "borrowings",
	ID:         "id",
	UserID:     "user_id",
	BookID:     "book_id",
	CopyID:     "copy_id",
	BorrowDate: "borrow_date",
	DueDate:    "due_date",
	ReturnDate: "return_date",
	Status:     "status",
}

// Columns returns all standard column names
func (t BorrowingsTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.BookID, t.CopyID, t.BorrowDate, t.DueDate,
		t.ReturnDate, t.Status,
	}
}
