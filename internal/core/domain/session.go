package domain

import "time"

// Session is the ephemeral server-side state behind the session cookie.
// UserID is empty until a successful login repopulates the session.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CSRFToken string    `json:"csrfToken"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s Session) Authenticated() bool {
	return s.UserID != ""
}
