package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/request"
	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/response"
	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/service"
)

type ReservationService interface {
	Book(ctx context.Context, userID uint, seats []domain.SeatRequest) (domain.Reservation, error)
	GetReservation(ctx context.Context, id, userID uint) (domain.Reservation, error)
	ListReservations(ctx context.Context, userID uint, page, pageSize int) ([]domain.Reservation, int64, error)
	DeleteReservation(ctx context.Context, id, userID uint) error
	GetTicket(ctx context.Context, id, userID uint) (domain.Ticket, error)
	ListTickets(ctx context.Context, userID uint) ([]domain.Ticket, error)
}

type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{
		svc: svc,
	}
}

// HandleCreateReservation godoc
// @Summary      Book seats
// @Description  Creates one reservation with one ticket per requested seat.
// @Description  The booking is all or nothing: if any seat is invalid or
// @Description  already taken, no ticket is created.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateReservationRequest true "request body"
// @Success      201      {object}  response.ReservationDetail
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /reservations [post]
// @Security BearerAuth
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	seats := make([]domain.SeatRequest, len(req.Tickets))
	for i, ticket := range req.Tickets {
		seats[i] = domain.SeatRequest{
			ShowSessionID: ticket.ShowSessionID,
			Row:           ticket.Row,
			Seat:          ticket.Seat,
		}
	}

	reservation, err := h.svc.Book(ctx.Request.Context(), userID, seats)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSeatsRequested),
			errors.Is(err, service.ErrSessionNotFound),
			errors.Is(err, service.ErrDuplicateSeat),
			errors.Is(err, service.ErrSeatOutOfBounds),
			errors.Is(err, service.ErrSeatTaken):
			response.RenderErr(ctx, response.ErrBadRequest(bookingError(err)))
		default:
			err = fmt.Errorf("v1.HandleCreateReservation -> h.svc.Book -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.NewReservationDetail(reservation))
}

// bookingError unwraps to the typed seat error so the response names the
// exact seat instead of the wrap chain.
func bookingError(err error) error {
	var seatTaken *service.SeatTakenError
	if errors.As(err, &seatTaken) {
		return seatTaken
	}

	var outOfBounds *service.SeatOutOfBoundsError
	if errors.As(err, &outOfBounds) {
		return outOfBounds
	}

	var duplicate *service.DuplicateSeatError
	if errors.As(err, &duplicate) {
		return duplicate
	}

	if errors.Is(err, service.ErrSessionNotFound) {
		return service.ErrSessionNotFound
	}

	return err
}

// HandleListReservations godoc
// @Summary      List the caller's reservations
// @Tags         reservations
// @Produce      json
// @Param        page       query     int  false  "page number, starting at 1"
// @Param        page_size  query     int  false  "page size, defaults to 3, capped at 100"
// @Success      200        {object}  response.ReservationPage
// @Failure      401        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /reservations [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleListReservations(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	page, pageSize := paginationParams(ctx)

	reservations, total, err := h.svc.ListReservations(ctx.Request.Context(), userID, page, pageSize)
	if err != nil {
		err = fmt.Errorf("v1.HandleListReservations -> h.svc.ListReservations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewReservationPage(reservations, total, page, pageSize))
}

func paginationParams(ctx *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err = strconv.Atoi(ctx.DefaultQuery("page_size", "3"))
	if err != nil || pageSize < 1 {
		pageSize = 3
	}
	if pageSize > 100 {
		pageSize = 100
	}

	return page, pageSize
}

// HandleGetReservation godoc
// @Summary      Get one of the caller's reservations
// @Tags         reservations
// @Produce      json
// @Param        reservationID  path      int  true  "reservation ID"
// @Success      200            {object}  response.ReservationDetail
// @Failure      401            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /reservations/{reservationID} [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.GetReservation(ctx.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reservation", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetReservation -> h.svc.GetReservation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewReservationDetail(reservation))
}

// HandleDeleteReservation godoc
// @Summary      Cancel one of the caller's reservations
// @Description  Deletes the reservation and all of its tickets, freeing the
// @Description  seats immediately.
// @Tags         reservations
// @Param        reservationID  path  int  true  "reservation ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /reservations/{reservationID} [delete]
// @Security BearerAuth
func (h *ReservationHandler) HandleDeleteReservation(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteReservation(ctx.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrReservationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("reservation", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteReservation -> h.svc.DeleteReservation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListTickets godoc
// @Summary      List the caller's tickets
// @Tags         tickets
// @Produce      json
// @Success      200  {array}   response.TicketList
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tickets [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleListTickets(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	tickets, err := h.svc.ListTickets(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleListTickets -> h.svc.ListTickets -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewTicketLists(tickets))
}

// HandleGetTicket godoc
// @Summary      Get one of the caller's tickets
// @Tags         tickets
// @Produce      json
// @Param        ticketID  path      int  true  "ticket ID"
// @Success      200       {object}  response.TicketDetail
// @Failure      401       {object}  response.Err
// @Failure      404       {object}  response.Err
// @Failure      500       {object}  response.Err
// @Router       /tickets/{ticketID} [get]
// @Security BearerAuth
func (h *ReservationHandler) HandleGetTicket(ctx *gin.Context) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "ticketID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	ticket, err := h.svc.GetTicket(ctx.Request.Context(), id, userID)
	if err != nil {
		if errors.Is(err, service.ErrTicketNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("ticket", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetTicket -> h.svc.GetTicket -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewTicketDetail(ticket))
}
