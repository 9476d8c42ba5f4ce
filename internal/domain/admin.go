package domain

import "time"

// AdminUser is the single dashboard account. PasswordHash is a bcrypt hash,
// never the raw secret.
type AdminUser struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
