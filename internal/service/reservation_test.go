package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/repository"
)

type fakeReservationRepo struct {
	createErr    error
	created      domain.Reservation
	createCalls  int
	gotSeats     []domain.SeatRequest
	gotOffset    int
	gotLimit     int
	reservations []domain.Reservation
	total        int64
}

func (f *fakeReservationRepo) CreateWithTickets(_ context.Context, _ uint, seats []domain.SeatRequest) (domain.Reservation, error) {
	f.createCalls++
	f.gotSeats = seats

	if f.createErr != nil {
		return domain.Reservation{}, f.createErr
	}

	return f.created, nil
}

func (f *fakeReservationRepo) FindByIDForUser(_ context.Context, id, _ uint) (domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}

	return domain.Reservation{}, repository.ErrReservationNotFound
}

func (f *fakeReservationRepo) ListByUser(_ context.Context, _ uint, offset, limit int) ([]domain.Reservation, int64, error) {
	f.gotOffset = offset
	f.gotLimit = limit

	return f.reservations, f.total, nil
}

func (f *fakeReservationRepo) DeleteByIDForUser(_ context.Context, id, _ uint) error {
	for _, r := range f.reservations {
		if r.ID == id {
			return nil
		}
	}

	return repository.ErrReservationNotFound
}

func (f *fakeReservationRepo) FindTicketByIDForUser(_ context.Context, _, _ uint) (domain.Ticket, error) {
	return domain.Ticket{}, repository.ErrTicketNotFound
}

func (f *fakeReservationRepo) ListTicketsByUser(_ context.Context, _ uint) ([]domain.Ticket, error) {
	return nil, nil
}

type fakeSessionFinder struct {
	sessions map[uint]domain.ShowSession
	calls    int
}

func (f *fakeSessionFinder) FindSessionByID(_ context.Context, id uint) (domain.ShowSession, error) {
	f.calls++

	session, ok := f.sessions[id]
	if !ok {
		return domain.ShowSession{}, ErrSessionNotFound
	}

	return session, nil
}

func newTestSessionFinder() *fakeSessionFinder {
	return &fakeSessionFinder{
		sessions: map[uint]domain.ShowSession{
			1: {
				ID: 1,
				PlanetariumDome: domain.PlanetariumDome{
					ID:         1,
					Rows:       10,
					SeatsInRow: 12,
				},
			},
		},
	}
}

func TestBook_EmptyRequest(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := NewReservationService(repo, newTestSessionFinder())

	_, err := svc.Book(context.Background(), 1, nil)

	require.ErrorIs(t, err, ErrNoSeatsRequested)
	assert.Zero(t, repo.createCalls)
}

func TestBook_UnknownSession(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := NewReservationService(repo, newTestSessionFinder())

	_, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
		{ShowSessionID: 99, Row: 1, Seat: 1},
	})

	require.ErrorIs(t, err, ErrSessionNotFound)
	assert.Zero(t, repo.createCalls)
}

func TestBook_SeatOutOfBounds(t *testing.T) {
	tests := []struct {
		name string
		row  int
		seat int
	}{
		{"row too high", 11, 1},
		{"seat too high", 1, 13},
		{"zero row", 0, 1},
		{"zero seat", 1, 0},
		{"negative row", -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeReservationRepo{}
			svc := NewReservationService(repo, newTestSessionFinder())

			_, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
				{ShowSessionID: 1, Row: tt.row, Seat: tt.seat},
			})

			require.ErrorIs(t, err, ErrSeatOutOfBounds)

			var oob *SeatOutOfBoundsError
			require.ErrorAs(t, err, &oob)
			assert.Equal(t, tt.row, oob.Row)
			assert.Equal(t, tt.seat, oob.Seat)
			assert.Equal(t, 10, oob.MaxRows)
			assert.Equal(t, 12, oob.MaxSeats)

			assert.Zero(t, repo.createCalls)
		})
	}
}

func TestBook_DuplicateSeatWithinRequest(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := NewReservationService(repo, newTestSessionFinder())

	_, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
		{ShowSessionID: 1, Row: 2, Seat: 3},
		{ShowSessionID: 1, Row: 2, Seat: 3},
	})

	require.ErrorIs(t, err, ErrDuplicateSeat)

	var dup *DuplicateSeatError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, 2, dup.Row)
	assert.Equal(t, 3, dup.Seat)

	assert.Zero(t, repo.createCalls)
}

func TestBook_SameSeatDifferentSessions(t *testing.T) {
	finder := newTestSessionFinder()
	finder.sessions[2] = domain.ShowSession{
		ID: 2,
		PlanetariumDome: domain.PlanetariumDome{
			ID:         1,
			Rows:       10,
			SeatsInRow: 12,
		},
	}

	repo := &fakeReservationRepo{created: domain.Reservation{ID: 7}}
	svc := NewReservationService(repo, finder)

	created, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
		{ShowSessionID: 1, Row: 2, Seat: 3},
		{ShowSessionID: 2, Row: 2, Seat: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, uint(7), created.ID)
	assert.Len(t, repo.gotSeats, 2)
}

func TestBook_SessionLookedUpOnce(t *testing.T) {
	finder := newTestSessionFinder()
	repo := &fakeReservationRepo{created: domain.Reservation{ID: 1}}
	svc := NewReservationService(repo, finder)

	_, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
		{ShowSessionID: 1, Row: 1, Seat: 1},
		{ShowSessionID: 1, Row: 1, Seat: 2},
		{ShowSessionID: 1, Row: 1, Seat: 3},
	})

	require.NoError(t, err)
	assert.Equal(t, 1, finder.calls)
}

func TestBook_SeatConflictPropagates(t *testing.T) {
	conflict := &repository.SeatTakenError{
		ShowSessionID: 1,
		Row:           2,
		Seat:          3,
	}
	repo := &fakeReservationRepo{createErr: conflict}
	svc := NewReservationService(repo, newTestSessionFinder())

	_, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
		{ShowSessionID: 1, Row: 2, Seat: 3},
	})

	require.ErrorIs(t, err, ErrSeatTaken)

	var taken *SeatTakenError
	require.ErrorAs(t, err, &taken)
	assert.Equal(t, 2, taken.Row)
	assert.Equal(t, 3, taken.Seat)
}

func TestBook_RepoErrorWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	repo := &fakeReservationRepo{createErr: boom}
	svc := NewReservationService(repo, newTestSessionFinder())

	_, err := svc.Book(context.Background(), 1, []domain.SeatRequest{
		{ShowSessionID: 1, Row: 1, Seat: 1},
	})

	require.ErrorIs(t, err, boom)
}

func TestListReservations_Pagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		pageSize   int
		wantOffset int
		wantLimit  int
	}{
		{"defaults", 0, 0, 0, 3},
		{"first page", 1, 3, 0, 3},
		{"second page", 2, 3, 3, 3},
		{"negative page", -5, 10, 0, 10},
		{"page size capped", 1, 1000, 0, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeReservationRepo{}
			svc := NewReservationService(repo, newTestSessionFinder())

			_, _, err := svc.ListReservations(context.Background(), 1, tt.page, tt.pageSize)

			require.NoError(t, err)
			assert.Equal(t, tt.wantOffset, repo.gotOffset)
			assert.Equal(t, tt.wantLimit, repo.gotLimit)
		})
	}
}

func TestGetReservation_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := NewReservationService(repo, newTestSessionFinder())

	_, err := svc.GetReservation(context.Background(), 42, 1)

	require.ErrorIs(t, err, ErrReservationNotFound)
}

func TestDeleteReservation_NotFound(t *testing.T) {
	repo := &fakeReservationRepo{}
	svc := NewReservationService(repo, newTestSessionFinder())

	err := svc.DeleteReservation(context.Background(), 42, 1)

	require.ErrorIs(t, err, ErrReservationNotFound)
}
