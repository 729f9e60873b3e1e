package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/repository"
)

var (
	ErrReservationNotFound = repository.ErrReservationNotFound
	ErrTicketNotFound      = repository.ErrTicketNotFound
	ErrSeatTaken           = repository.ErrSeatTaken
	ErrNoSeatsRequested    = errors.New("a booking must request at least one seat")
	ErrSeatOutOfBounds     = errors.New("seat outside dome bounds")
	ErrDuplicateSeat       = errors.New("duplicate seat within one booking")
)

type SeatTakenError = repository.SeatTakenError

// SeatOutOfBoundsError reports a requested seat that does not exist in the
// session's dome. errors.Is(err, ErrSeatOutOfBounds) matches.
type SeatOutOfBoundsError struct {
	ShowSessionID uint
	Row           int
	Seat          int
	MaxRows       int
	MaxSeats      int
}

func (e *SeatOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"seat (row %d, seat %d) is outside the dome bounds for show session %d (rows 1..%d, seats 1..%d)",
		e.Row, e.Seat, e.ShowSessionID, e.MaxRows, e.MaxSeats,
	)
}

func (e *SeatOutOfBoundsError) Is(target error) bool {
	return target == ErrSeatOutOfBounds
}

// DuplicateSeatError reports the same seat requested twice in one booking.
// errors.Is(err, ErrDuplicateSeat) matches.
type DuplicateSeatError struct {
	ShowSessionID uint
	Row           int
	Seat          int
}

func (e *DuplicateSeatError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) is requested more than once for show session %d", e.Row, e.Seat, e.ShowSessionID)
}

func (e *DuplicateSeatError) Is(target error) bool {
	return target == ErrDuplicateSeat
}

type ReservationRepository interface {
	CreateWithTickets(ctx context.Context, userID uint, seats []domain.SeatRequest) (domain.Reservation, error)
	FindByIDForUser(ctx context.Context, id, userID uint) (domain.Reservation, error)
	ListByUser(ctx context.Context, userID uint, offset, limit int) ([]domain.Reservation, int64, error)
	DeleteByIDForUser(ctx context.Context, id, userID uint) error
	FindTicketByIDForUser(ctx context.Context, id, userID uint) (domain.Ticket, error)
	ListTicketsByUser(ctx context.Context, userID uint) ([]domain.Ticket, error)
}

type SessionFinder interface {
	FindSessionByID(ctx context.Context, id uint) (domain.ShowSession, error)
}

const (
	defaultPageSize = 3
	maxPageSize     = 100
)

// ReservationService is the seat reservation engine: the only component that
// creates ticket and reservation rows.
type ReservationService struct {
	repo     ReservationRepository
	sessions SessionFinder
}

func NewReservationService(repo ReservationRepository, sessions SessionFinder) *ReservationService {
	return &ReservationService{
		repo:     repo,
		sessions: sessions,
	}
}

// Book validates every requested seat before anything is written, then
// creates one reservation plus one ticket per seat atomically. Validation
// checks sessions, dome bounds and intra-request duplicates; the final word
// on seat conflicts belongs to the storage layer's unique constraint, so two
// overlapping concurrent bookings cannot both succeed regardless of what the
// pre-checks saw. The loser receives a SeatTakenError and may retry with
// different seats; nothing is retried automatically.
func (s *ReservationService) Book(ctx context.Context, userID uint, seats []domain.SeatRequest) (domain.Reservation, error) {
	if len(seats) == 0 {
		return domain.Reservation{}, ErrNoSeatsRequested
	}

	seen := make(map[domain.SeatRequest]struct{}, len(seats))
	sessions := make(map[uint]domain.ShowSession)

	for _, seat := range seats {
		if _, dup := seen[seat]; dup {
			return domain.Reservation{}, &DuplicateSeatError{
				ShowSessionID: seat.ShowSessionID,
				Row:           seat.Row,
				Seat:          seat.Seat,
			}
		}
		seen[seat] = struct{}{}

		session, ok := sessions[seat.ShowSessionID]
		if !ok {
			var err error
			session, err = s.sessions.FindSessionByID(ctx, seat.ShowSessionID)
			if err != nil {
				if errors.Is(err, ErrSessionNotFound) {
					return domain.Reservation{}, ErrSessionNotFound
				}

				return domain.Reservation{}, fmt.Errorf("s.sessions.FindSessionByID -> %w", err)
			}
			sessions[seat.ShowSessionID] = session
		}

		if !session.PlanetariumDome.SeatWithinBounds(seat.Row, seat.Seat) {
			return domain.Reservation{}, &SeatOutOfBoundsError{
				ShowSessionID: seat.ShowSessionID,
				Row:           seat.Row,
				Seat:          seat.Seat,
				MaxRows:       session.PlanetariumDome.Rows,
				MaxSeats:      session.PlanetariumDome.SeatsInRow,
			}
		}
	}

	created, err := s.repo.CreateWithTickets(ctx, userID, seats)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.CreateWithTickets -> %w", err)
	}

	return created, nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id, userID uint) (domain.Reservation, error) {
	reservation, err := s.repo.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.FindByIDForUser -> %w", err)
	}

	return reservation, nil
}

// ListReservations pages through the caller's reservations. Page size
// defaults to 3 and is capped at 100.
func (s *ReservationService) ListReservations(ctx context.Context, userID uint, page, pageSize int) ([]domain.Reservation, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	reservations, total, err := s.repo.ListByUser(ctx, userID, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("s.repo.ListByUser -> %w", err)
	}

	return reservations, total, nil
}

func (s *ReservationService) DeleteReservation(ctx context.Context, id, userID uint) error {
	if err := s.repo.DeleteByIDForUser(ctx, id, userID); err != nil {
		return fmt.Errorf("s.repo.DeleteByIDForUser -> %w", err)
	}

	return nil
}

func (s *ReservationService) GetTicket(ctx context.Context, id, userID uint) (domain.Ticket, error) {
	ticket, err := s.repo.FindTicketByIDForUser(ctx, id, userID)
	if err != nil {
		return domain.Ticket{}, fmt.Errorf("s.repo.FindTicketByIDForUser -> %w", err)
	}

	return ticket, nil
}

func (s *ReservationService) ListTickets(ctx context.Context, userID uint) ([]domain.Ticket, error) {
	tickets, err := s.repo.ListTicketsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListTicketsByUser -> %w", err)
	}

	return tickets, nil
}
