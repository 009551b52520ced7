package salve

// User is a demo account record.
type User struct {
	ID     int64  `json:"id"`
	Nomen  string `json:"nomen"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

// NewUser creates an active user.
func NewUser(id int64, nomen, email string) User {
	return User{
		ID:     id,
		Nomen:  nomen,
		Email:  email,
		Active: true,
	}
}

// ValidID reports whether id is a usable user ID.
func ValidID(id int64) bool {
	return id > 0
}

// ValidateUser reports whether u has a usable ID and a non-empty name.
func ValidateUser(u User) bool {
	if !ValidID(u.ID) {
		return false
	}
	return u.Nomen != ""
}
