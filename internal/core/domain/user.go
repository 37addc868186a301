package domain

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           int
	UUID         uuid.UUID
	Name         string `validate:"required,min=1,max=100"`
	Email        string `validate:"required,email,max=255"`
	PasswordHash string `validate:"required"`
	Age          int    `validate:"min=0"`
	Avatar       []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SessionToken is one row of a user's active session collection. A token is
// valid only while its exact string is still present for its user.
type SessionToken struct {
	ID        int
	UserID    int
	Token     string
	CreatedAt time.Time
}
