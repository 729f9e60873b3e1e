package domain

import "time"

type PlanetariumDome struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Rows       int       `json:"rows"`
	SeatsInRow int       `json:"seats_in_row"`
	ImageURL   string    `json:"image_url,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Capacity is always derived, never stored.
func (d PlanetariumDome) Capacity() int {
	return d.Rows * d.SeatsInRow
}

func (d PlanetariumDome) SeatWithinBounds(row, seat int) bool {
	return row >= 1 && row <= d.Rows && seat >= 1 && seat <= d.SeatsInRow
}
