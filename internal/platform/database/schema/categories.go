package schema

// CategoriesTable represents the 'categories' table
type CategoriesTable struct {
	Table     string
	ID        string
	Name      string
	UpdatedAt string
}

// Categories is the schema definition for the categories table
var Categories = CategoriesTable{
	Table:     "categories",
	ID:        "id",
	Name:      "name",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t CategoriesTable) Columns() []string {
	return []string{t.ID, t.Name, t.UpdatedAt}
}

// BookCategoriesTable represents the 'book_categories' join table
type BookCategoriesTable struct {
	Table      string
	BookID     string
	CategoryID string
}

// BookCategories is the schema definition for the book_categories table
var BookCategories = BookCategoriesTable{
	Table:      "book_categories",
	BookID:     "book_id",
	CategoryID: "category_id",
}
