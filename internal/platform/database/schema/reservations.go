package schema

// ReservationsTable represents the 'reservations' table
type ReservationsTable struct {
	Table           string
	ID              string
	CopyID          string
	BookID          string
	UserID          string
	ReservationDate string
	Status          string
}

// Reservations is the schema definition for the reservations table
var Reservations = ReservationsTable{
	Table:           "reservations",
	ID:              "id",
	CopyID:          "copy_id",
	BookID:          "book_id",
	UserID:          "user_id",
	ReservationDate: "reservation_date",
	Status:          "status",
}

// Columns returns all standard column names
func (t ReservationsTable) Columns() []string {
	return []string{t.ID, t.CopyID, t.BookID, t.UserID, t.ReservationDate, t.Status}
}
