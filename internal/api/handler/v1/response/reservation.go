package response

import (
	"time"

	"github.com/astroreserve/planetarium-api/internal/domain"
)

// TicketDetail is the shape tickets take inside a reservation.
type TicketDetail struct {
	ID          uint        `json:"id"`
	Row         int         `json:"row"`
	Seat        int         `json:"seat"`
	ShowSession SessionList `json:"show_session"`
}

func NewTicketDetail(ticket domain.Ticket) TicketDetail {
	return TicketDetail{
		ID:          ticket.ID,
		Row:         ticket.Row,
		Seat:        ticket.Seat,
		ShowSession: NewSessionList(ticket.ShowSession),
	}
}

func NewTicketDetails(tickets []domain.Ticket) []TicketDetail {
	views := make([]TicketDetail, len(tickets))
	for i, ticket := range tickets {
		views[i] = NewTicketDetail(ticket)
	}

	return views
}

// TicketList is the flat shape for the tickets listing.
type TicketList struct {
	ID            uint      `json:"id"`
	Row           int       `json:"row"`
	Seat          int       `json:"seat"`
	AstronomyShow string    `json:"astronomy_show"`
	ShowTime      time.Time `json:"show_time"`
}

func NewTicketList(ticket domain.Ticket) TicketList {
	return TicketList{
		ID:            ticket.ID,
		Row:           ticket.Row,
		Seat:          ticket.Seat,
		AstronomyShow: ticket.ShowSession.AstronomyShow.Title,
		ShowTime:      ticket.ShowSession.ShowTime,
	}
}

func NewTicketLists(tickets []domain.Ticket) []TicketList {
	views := make([]TicketList, len(tickets))
	for i, ticket := range tickets {
		views[i] = NewTicketList(ticket)
	}

	return views
}

type ReservationDetail struct {
	ID        uint           `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	Tickets   []TicketDetail `json:"tickets"`
}

func NewReservationDetail(reservation domain.Reservation) ReservationDetail {
	return ReservationDetail{
		ID:        reservation.ID,
		CreatedAt: reservation.CreatedAt,
		Tickets:   NewTicketDetails(reservation.Tickets),
	}
}

// ReservationPage wraps a page of the caller's reservations.
type ReservationPage struct {
	Count    int64               `json:"count"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
	Results  []ReservationDetail `json:"results"`
}

func NewReservationPage(reservations []domain.Reservation, count int64, page, pageSize int) ReservationPage {
	results := make([]ReservationDetail, len(reservations))
	for i, reservation := range reservations {
		results[i] = NewReservationDetail(reservation)
	}

	return ReservationPage{
		Count:    count,
		Page:     page,
		PageSize: pageSize,
		Results:  results,
	}
}
