package domain

import (
	"time"

	"github.com/google/uuid"
)

type Task struct {
	ID          int
	UUID        uuid.UUID
	Description string `validate:"required,min=1,max=1000"`
	Completed   bool
	UserID      int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
