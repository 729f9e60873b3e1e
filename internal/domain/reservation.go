package domain

import "time"

type Reservation struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	Tickets   []Ticket  `json:"tickets"`
}

type Ticket struct {
	ID            uint        `json:"id"`
	Row           int         `json:"row"`
	Seat          int         `json:"seat"`
	ShowSessionID uint        `json:"show_session_id"`
	ReservationID uint        `json:"reservation_id"`
	ShowSession   ShowSession `json:"show_session,omitempty"`
}

// SeatRequest is one seat a booking asks for.
type SeatRequest struct {
	ShowSessionID uint `json:"show_session"`
	Row           int  `json:"row"`
	Seat          int  `json:"seat"`
}
