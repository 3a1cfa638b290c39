package schema

// FinesTable represents the 'fines' table
type FinesTable struct {
	Table         string
	ID            string
	TransactionID string
	FineAmount    string
	Paid          string
	PaidDate      string
	UpdatedAt     string
}

// Fines is the schema definition for the fines table
var Fines = FinesTable{
	Table:         "fines",
	ID:            "id",
	TransactionID: "transaction_id",
	FineAmount:    "fine_amount",
	Paid:          "paid",
	PaidDate:      "paid_date",
	UpdatedAt:     "updated_at",
}

// Columns returns all standard column names
func (t FinesTable) Columns() []string {
	return []string{t.ID, t.TransactionID, t.FineAmount, t.Paid, t.PaidDate, t.UpdatedAt}
}
