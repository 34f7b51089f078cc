package user

import (
	"time"

	"github.com/google/uuid"
)

// Profile is a dashboard user. ID is the session subject.
type Profile struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is what a successful login hands back to the handler.
type Session struct {
	Profile      *Profile
	AccessToken  string
	RefreshToken string
}
