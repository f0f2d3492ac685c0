package domain

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	AvatarURL    string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    *time.Time
}
