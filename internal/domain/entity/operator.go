package entity

// Operator is the person running the billing terminal. There is a single
// configured operator; the password is kept only as a bcrypt hash.
type Operator struct {
	Username     string `json:"username"`
	DisplayName  string `json:"display_name"`
	PasswordHash string `json:"-"`
}
