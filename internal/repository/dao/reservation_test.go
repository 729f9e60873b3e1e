package dao

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var seq atomic.Uint64

func uniq(prefix string) string {
	return fmt.Sprintf("%v-%d", prefix, seq.Add(1))
}

func seedUser(t *testing.T) User {
	t.Helper()

	user, err := NewUserDAO(testDB).Insert(context.Background(), User{
		Email:    uniq("user") + "@example.com",
		Password: "hashed",
		Name:     "Test User",
	})
	require.NoError(t, err)

	return user
}

func seedSession(t *testing.T, rows, seatsInRow int) ShowSession {
	t.Helper()

	ctx := context.Background()
	catalog := NewCatalogDAO(testDB)

	show, err := catalog.InsertShow(ctx, AstronomyShow{
		Title:       uniq("show"),
		Description: "A tour of the night sky.",
	})
	require.NoError(t, err)

	dome, err := catalog.InsertDome(ctx, PlanetariumDome{
		Name:       uniq("dome"),
		Rows:       rows,
		SeatsInRow: seatsInRow,
	})
	require.NoError(t, err)

	session, err := catalog.InsertSession(ctx, ShowSession{
		AstronomyShowID:   show.ID,
		PlanetariumDomeID: dome.ID,
		ShowTime:          time.Now().Add(24 * time.Hour),
	})
	require.NoError(t, err)

	return session
}

func TestInsertWithTickets_PersistsBooking(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	user := seedUser(t)
	session := seedSession(t, 10, 12)

	created, err := d.InsertWithTickets(ctx, Reservation{UserID: user.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 1, Seat: 1},
		{ShowSessionID: session.ID, Row: 1, Seat: 2},
	})

	require.NoError(t, err)
	require.Len(t, created.Tickets, 2)
	assert.Equal(t, user.ID, created.UserID)
	assert.Equal(t, session.ID, created.Tickets[0].ShowSessionID)
	assert.NotZero(t, created.Tickets[0].ShowSession.PlanetariumDome.ID)
}

func TestInsertWithTickets_SeatConflict(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	first := seedUser(t)
	second := seedUser(t)
	session := seedSession(t, 10, 12)

	_, err := d.InsertWithTickets(ctx, Reservation{UserID: first.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 3, Seat: 4},
	})
	require.NoError(t, err)

	_, err = d.InsertWithTickets(ctx, Reservation{UserID: second.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 3, Seat: 4},
	})

	require.ErrorIs(t, err, ErrSeatTaken)

	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, session.ID, taken.ShowSessionID)
	assert.Equal(t, 3, taken.Row)
	assert.Equal(t, 4, taken.Seat)
}

// A failed batch must leave nothing behind, including seats that were free.
func TestInsertWithTickets_AtomicRollback(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	first := seedUser(t)
	second := seedUser(t)
	session := seedSession(t, 10, 12)

	_, err := d.InsertWithTickets(ctx, Reservation{UserID: first.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 1, Seat: 1},
	})
	require.NoError(t, err)

	_, err = d.InsertWithTickets(ctx, Reservation{UserID: second.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 2, Seat: 2},
		{ShowSessionID: session.ID, Row: 1, Seat: 1},
	})
	require.ErrorIs(t, err, ErrSeatTaken)

	var count int64
	require.NoError(t, testDB.Model(&Ticket{}).
		Where("show_session_id = ?", session.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	reservations, err := d.ListByUser(ctx, second.ID, 0, 10)
	require.NoError(t, err)
	assert.Empty(t, reservations)

	// The free seat from the failed batch is still bookable.
	_, err = d.InsertWithTickets(ctx, Reservation{UserID: second.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 2, Seat: 2},
	})
	require.NoError(t, err)
}

func TestInsertWithTickets_ConcurrentSameSeat(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	session := seedSession(t, 10, 12)

	const contenders = 8

	users := make([]User, contenders)
	for i := range users {
		users[i] = seedUser(t)
	}

	errs := make([]error, contenders)

	var wg sync.WaitGroup
	for i := 0; i < contenders; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()

			_, errs[i] = d.InsertWithTickets(ctx, Reservation{UserID: users[i].ID}, []Ticket{
				{ShowSessionID: session.ID, Row: 5, Seat: 5},
			})
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			require.ErrorIs(t, err, ErrSeatTaken)
		}
	}
	assert.Equal(t, 1, winners)

	var count int64
	require.NoError(t, testDB.Model(&Ticket{}).
		Where("show_session_id = ?", session.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestFindByIDForUser_ForeignID(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	owner := seedUser(t)
	other := seedUser(t)
	session := seedSession(t, 10, 12)

	created, err := d.InsertWithTickets(ctx, Reservation{UserID: owner.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 1, Seat: 1},
	})
	require.NoError(t, err)

	_, err = d.FindByIDForUser(ctx, created.ID, other.ID)
	require.ErrorIs(t, err, ErrReservationNotFound)

	found, err := d.FindByIDForUser(ctx, created.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestListByUser_Pagination(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	user := seedUser(t)
	session := seedSession(t, 10, 12)

	for seat := 1; seat <= 5; seat++ {
		_, err := d.InsertWithTickets(ctx, Reservation{UserID: user.ID}, []Ticket{
			{ShowSessionID: session.ID, Row: 1, Seat: seat},
		})
		require.NoError(t, err)
	}

	total, err := d.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)

	page, err := d.ListByUser(ctx, user.ID, 0, 3)
	require.NoError(t, err)
	assert.Len(t, page, 3)

	page, err = d.ListByUser(ctx, user.ID, 3, 3)
	require.NoError(t, err)
	assert.Len(t, page, 2)
}

// Cancelling a reservation removes its tickets and frees the seats.
func TestDeleteByIDForUser_FreesSeats(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	owner := seedUser(t)
	other := seedUser(t)
	session := seedSession(t, 10, 12)

	created, err := d.InsertWithTickets(ctx, Reservation{UserID: owner.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 7, Seat: 7},
	})
	require.NoError(t, err)

	err = d.DeleteByIDForUser(ctx, created.ID, other.ID)
	require.ErrorIs(t, err, ErrReservationNotFound)

	require.NoError(t, d.DeleteByIDForUser(ctx, created.ID, owner.ID))

	var count int64
	require.NoError(t, testDB.Model(&Ticket{}).
		Where("show_session_id = ?", session.ID).
		Count(&count).Error)
	assert.Zero(t, count)

	_, err = d.InsertWithTickets(ctx, Reservation{UserID: other.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 7, Seat: 7},
	})
	require.NoError(t, err)
}

func TestTicketLookupsScopedToOwner(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewReservationDAO(testDB)
	owner := seedUser(t)
	other := seedUser(t)
	session := seedSession(t, 10, 12)

	created, err := d.InsertWithTickets(ctx, Reservation{UserID: owner.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 2, Seat: 8},
	})
	require.NoError(t, err)
	require.Len(t, created.Tickets, 1)

	ticketID := created.Tickets[0].ID

	_, err = d.FindTicketByIDForUser(ctx, ticketID, other.ID)
	require.ErrorIs(t, err, ErrTicketNotFound)

	ticket, err := d.FindTicketByIDForUser(ctx, ticketID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, ticket.Row)
	assert.Equal(t, 8, ticket.Seat)

	tickets, err := d.ListTicketsByUser(ctx, other.ID)
	require.NoError(t, err)
	assert.Empty(t, tickets)
}
