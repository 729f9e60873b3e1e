package repository

import (
	"context"
	"fmt"

	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/repository/dao"
)

var (
	ErrReservationNotFound = dao.ErrReservationNotFound
	ErrTicketNotFound      = dao.ErrTicketNotFound
	ErrSeatTaken           = dao.ErrSeatTaken
)

// SeatTakenError is surfaced as-is from the storage layer.
type SeatTakenError = dao.SeatTakenError

type ReservationDAO interface {
	InsertWithTickets(ctx context.Context, reservation dao.Reservation, tickets []dao.Ticket) (dao.Reservation, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (dao.Reservation, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]dao.Reservation, error)
	CountByUser(ctx context.Context, userID uint) (int64, error)
	DeleteByIDForUser(ctx context.Context, id, userID uint) error
	FindTicketByIDForUser(ctx context.Context, id, userID uint) (dao.Ticket, error)
	ListTicketsByUser(ctx context.Context, userID uint) ([]dao.Ticket, error)
}

type ReservationRepository struct {
	dao     ReservationDAO
	catalog *CatalogRepository
}

func NewReservationRepository(dao ReservationDAO, catalog *CatalogRepository) *ReservationRepository {
	return &ReservationRepository{
		dao:     dao,
		catalog: catalog,
	}
}

// CreateWithTickets persists one reservation and all requested seats as a
// single atomic unit. The conflict signal for overlapping concurrent
// bookings comes from the tickets table's composite unique index.
func (r *ReservationRepository) CreateWithTickets(ctx context.Context, userID uint, seats []domain.SeatRequest) (domain.Reservation, error) {
	tickets := make([]dao.Ticket, len(seats))
	for i, seat := range seats {
		tickets[i] = dao.Ticket{
			ShowSessionID: seat.ShowSessionID,
			Row:           seat.Row,
			Seat:          seat.Seat,
		}
	}

	created, err := r.dao.InsertWithTickets(ctx, dao.Reservation{UserID: userID}, tickets)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.InsertWithTickets -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ReservationRepository) FindByIDForUser(ctx context.Context, id, userID uint) (domain.Reservation, error) {
	found, err := r.dao.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("r.dao.FindByIDForUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ReservationRepository) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Reservation, int64, error) {
	found, err := r.dao.ListByUser(ctx, userID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.ListByUser -> %w", err)
	}

	total, err := r.dao.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("r.dao.CountByUser -> %w", err)
	}

	reservations := make([]domain.Reservation, len(found))
	for i, reservation := range found {
		reservations[i] = r.daoToDomain(reservation)
	}

	return reservations, total, nil
}

func (r *ReservationRepository) DeleteByIDForUser(ctx context.Context, id, userID uint) error {
	if err := r.dao.DeleteByIDForUser(ctx, id, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteByIDForUser -> %w", err)
	}

	return nil
}

func (r *ReservationRepository) FindTicketByIDForUser(ctx context.Context, id, userID uint) (domain.Ticket, error) {
	found, err := r.dao.FindTicketByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("r.dao.FindTicketByIDForUser -> %w", err)
	}

	return r.ticketDAOToDomain(found), nil
}

func (r *ReservationRepository) ListTicketsByUser(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	found, err := r.dao.ListTicketsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListTicketsByUser -> %w", err)
	}

	tickets := make([]domain.Ticket, len(found))
	for i, ticket := range found {
		tickets[i] = r.ticketDAOToDomain(ticket)
	}

	return tickets, nil
}

func (r *ReservationRepository) daoToDomain(reservation dao.Reservation) domain.Reservation {
	tickets := make([]domain.Ticket, len(reservation.Tickets))
	for i, ticket := range reservation.Tickets {
		tickets[i] = r.ticketDAOToDomain(ticket)
	}

	return domain.Reservation{
		ID:        reservation.ID,
		UserID:    reservation.UserID,
		CreatedAt: reservation.CreatedAt,
		Tickets:   tickets,
	}
}

func (r *ReservationRepository) ticketDAOToDomain(ticket dao.Ticket) domain.Ticket {
	return domain.Ticket{
		ID:            ticket.ID,
		Row:           ticket.Row,
		Seat:          ticket.Seat,
		ShowSessionID: ticket.ShowSessionID,
		ReservationID: ticket.ReservationID,
		ShowSession:   r.catalog.sessionDAOToDomain(ticket.ShowSession),
	}
}
