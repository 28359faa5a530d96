package models

// User represents a row of the users table. Credentials are stored verbatim
// as submitted; /users serializes every column, password included, matching
// the documented contract. Do not deploy this storage scheme to production
// without hashing (see DESIGN.md).
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
