package dao

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrReservationNotFound = errors.New("reservation not found")
	ErrTicketNotFound      = errors.New("ticket not found")
	ErrSeatTaken           = errors.New("seat already taken")
)

// SeatTakenError carries the conflicting seat so callers can tell the client
// exactly which seat lost the race. errors.Is(err, ErrSeatTaken) matches.
type SeatTakenError struct {
	ShowSessionID uint
	Row           int
	Seat          int
}

func (e *SeatTakenError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) is already taken for show session %d", e.Row, e.Seat, e.ShowSessionID)
}

func (e *SeatTakenError) Is(target error) bool {
	return target == ErrSeatTaken
}

type Reservation struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`

	Tickets []Ticket `gorm:"constraint:OnDelete:CASCADE"`
}

// Ticket rows carry the composite unique index that arbitrates concurrent
// bookings: at most one ticket may exist per (show_session_id, row, seat).
type Ticket struct {
	ID uint `gorm:"primaryKey"`

	ShowSessionID uint        `gorm:"not null;uniqueIndex:idx_tickets_session_seat,priority:1"`
	ShowSession   ShowSession `gorm:"constraint:OnDelete:CASCADE"`
	Row           int         `gorm:"not null;uniqueIndex:idx_tickets_session_seat,priority:2"`
	Seat          int         `gorm:"not null;uniqueIndex:idx_tickets_session_seat,priority:3"`

	ReservationID uint        `gorm:"not null;index"`
	Reservation   Reservation `gorm:"constraint:OnDelete:CASCADE"`
}

type ReservationDAO struct {
	db *gorm.DB
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db: db,
	}
}

// InsertWithTickets creates one reservation plus its tickets in a single
// transaction. Tickets are inserted one at a time so a unique-index violation
// can be attributed to the exact seat that conflicted; the transaction rolls
// back as a whole, leaving no partial booking behind.
func (d *ReservationDAO) InsertWithTickets(ctx context.Context, reservation Reservation, tickets []Ticket) (Reservation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Tickets").Create(&reservation).Error; err != nil {
			return err
		}

		for i := range tickets {
			tickets[i].ReservationID = reservation.ID
			if err := tx.Omit("ShowSession", "Reservation").Create(&tickets[i]).Error; err != nil {
				var pgErr *pgconn.PgError
				if errors.As(err, &pgErr) &&
					pgErr.Code == pgerrcode.UniqueViolation &&
					strings.Contains(pgErr.Message, `"idx_tickets_session_seat"`) {
					return &SeatTakenError{
						ShowSessionID: tickets[i].ShowSessionID,
						Row:           tickets[i].Row,
						Seat:          tickets[i].Seat,
					}
				}

				return err
			}
		}

		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	return d.FindByIDForUser(ctx, reservation.ID, reservation.UserID)
}

// FindByIDForUser scopes the lookup to the owner; a foreign id behaves
// exactly like a missing one.
func (d *ReservationDAO) FindByIDForUser(ctx context.Context, id, userID uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).
		Preload("Tickets.ShowSession.AstronomyShow.Themes").
		Preload("Tickets.ShowSession.PlanetariumDome").
		Where("user_id = ?", userID).
		First(&reservation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) ListByUser(ctx context.Context, userID uint, offset, limit int) ([]Reservation, error) {
	var reservations []Reservation

	result := d.db.WithContext(ctx).
		Preload("Tickets.ShowSession.AstronomyShow.Themes").
		Preload("Tickets.ShowSession.PlanetariumDome").
		Where("user_id = ?", userID).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

func (d *ReservationDAO) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).Model(&Reservation{}).
		Where("user_id = ?", userID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *ReservationDAO) DeleteByIDForUser(ctx context.Context, id, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&Reservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

func (d *ReservationDAO) FindTicketByIDForUser(ctx context.Context, id, userID uint) (Ticket, error) {
	var ticket Ticket

	result := d.db.WithContext(ctx).
		Preload("ShowSession.AstronomyShow.Themes").
		Preload("ShowSession.PlanetariumDome").
		Preload("Reservation").
		Joins("JOIN reservations ON reservations.id = tickets.reservation_id").
		Where("reservations.user_id = ?", userID).
		First(&ticket, "tickets.id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Ticket{}, ErrTicketNotFound
		}

		return Ticket{}, result.Error
	}

	return ticket, nil
}

func (d *ReservationDAO) ListTicketsByUser(ctx context.Context, userID uint) ([]Ticket, error) {
	var tickets []Ticket

	result := d.db.WithContext(ctx).
		Preload("ShowSession.AstronomyShow.Themes").
		Preload("ShowSession.PlanetariumDome").
		Preload("Reservation").
		Joins("JOIN reservations ON reservations.id = tickets.reservation_id").
		Where("reservations.user_id = ?", userID).
		Order("tickets.id").
		Find(&tickets)
	if result.Error != nil {
		return nil, result.Error
	}

	return tickets, nil
}
