package request

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
)

type TicketRequest struct {
	Row           int  `json:"row"`
	Seat          int  `json:"seat"`
	ShowSessionID uint `json:"show_session"`
}

type CreateReservationRequest struct {
	Tickets []TicketRequest `json:"tickets"`
}

func (req *CreateReservationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Tickets, validation.Required, validation.Each(validation.By(validateTicketRequest))),
	)
}

func validateTicketRequest(value interface{}) error {
	ticket, ok := value.(TicketRequest)
	if !ok {
		return fmt.Errorf("invalid ticket")
	}

	return validation.ValidateStruct(&ticket,
		validation.Field(&ticket.Row, validation.Required, validation.Min(1)),
		validation.Field(&ticket.Seat, validation.Required, validation.Min(1)),
		validation.Field(&ticket.ShowSessionID, validation.Required, validation.Min(uint(1))),
	)
}
