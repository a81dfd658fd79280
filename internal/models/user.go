package models

import "time"

type User struct {
	ID           int64      `json:"id"`
	Username     string     `json:"username"`
	Email        *string    `json:"email"`
	PasswordHash string     `json:"-"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}

type CreateUserRequest struct {
	Username string  `json:"username" validate:"required|minLen:3|maxLen:64"`
	Email    *string `json:"email" validate:"email"`
	Password string  `json:"password" validate:"required|minLen:8"`
}
