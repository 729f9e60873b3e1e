package domain

import "time"

type ShowSession struct {
	ID                uint            `json:"id"`
	AstronomyShowID   uint            `json:"astronomy_show_id"`
	PlanetariumDomeID uint            `json:"planetarium_dome_id"`
	ShowTime          time.Time       `json:"show_time"`
	AstronomyShow     AstronomyShow   `json:"astronomy_show,omitempty"`
	PlanetariumDome   PlanetariumDome `json:"planetarium_dome,omitempty"`

	// TicketsSold and TicketsLeft are computed at query time from dome
	// capacity and the current ticket rows. They are never persisted.
	TicketsSold int `json:"tickets_sold"`
	TicketsLeft int `json:"tickets_left"`
}
