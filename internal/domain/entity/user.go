package entity

import "time"

// Estados válidos para User.
const (
	UserStatusActive    = "active"
	UserStatusSuspended = "suspended"
)

// User cuenta del backend hospedado.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
