package domain

// Account carries the credentials for one user. Password holds a bcrypt hash,
// never the raw value.
type Account struct {
	UserID   string
	Password string
}

// UserProfile shares its identity with the Account created alongside it.
type UserProfile struct {
	UserID string
	Name   string
}
