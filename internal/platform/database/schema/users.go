package schema

// UsersTable represents the 'users' table
type UsersTable struct {
	Table     string
	ID        string
	Name      string
	Role      string
	Username  string
	Password  string
	Email     string
	Phone     string
	Photo     string
	Address   string
	CreatedAt string
	UpdatedAt string
}

// Users is the schema definition for the users table
var Users = UsersTable{
	Table:     "users",
	ID:        "id",
	Name:      "name",
	Role:      "role",
	Username:  "username",
	Password:  "password",
	Email:     "email",
	Phone:     "phone",
	Photo:     "photo",
	Address:   "address",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

// Columns returns all standard column names
func (t UsersTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.Role, t.Username, t.Password, t.Email,
		t.Phone, t.Photo, t.Address, t.CreatedAt, t.UpdatedAt,
	}
}
