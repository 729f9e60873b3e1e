package domain

import "time"

type ShowTheme struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type AstronomyShow struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Themes      []ShowTheme `json:"themes"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
