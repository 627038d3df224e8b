package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserRole     = "user"
	EducatorRole = "educator"
	AdminRole    = "admin"
)

type User struct {
	ID        uuid.UUID
	Username  string
	Email     string
	Password  string
	Role      string
	OTP       *string
	CreatedAt time.Time
}
