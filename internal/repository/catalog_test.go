package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroreserve/planetarium-api/internal/repository/dao"
)

type stubCatalogDAO struct {
	sessions map[uint]dao.ShowSession
	counts   map[uint]int
}

func (s *stubCatalogDAO) InsertTheme(_ context.Context, theme dao.ShowTheme) (dao.ShowTheme, error) {
	return theme, nil
}

func (s *stubCatalogDAO) ListThemes(_ context.Context) ([]dao.ShowTheme, error) {
	return nil, nil
}

func (s *stubCatalogDAO) FindThemesByIDs(_ context.Context, _ []uint) ([]dao.ShowTheme, error) {
	return nil, nil
}

func (s *stubCatalogDAO) InsertShow(_ context.Context, show dao.AstronomyShow) (dao.AstronomyShow, error) {
	return show, nil
}

func (s *stubCatalogDAO) FindShowByID(_ context.Context, _ uint) (dao.AstronomyShow, error) {
	return dao.AstronomyShow{}, dao.ErrShowNotFound
}

func (s *stubCatalogDAO) ListShows(_ context.Context) ([]dao.AstronomyShow, error) {
	return nil, nil
}

func (s *stubCatalogDAO) UpdateShow(_ context.Context, show dao.AstronomyShow) (dao.AstronomyShow, error) {
	return show, nil
}

func (s *stubCatalogDAO) DeleteShow(_ context.Context, _ uint) error {
	return nil
}

func (s *stubCatalogDAO) InsertDome(_ context.Context, dome dao.PlanetariumDome) (dao.PlanetariumDome, error) {
	return dome, nil
}

func (s *stubCatalogDAO) FindDomeByID(_ context.Context, _ uint) (dao.PlanetariumDome, error) {
	return dao.PlanetariumDome{}, dao.ErrDomeNotFound
}

func (s *stubCatalogDAO) ListDomes(_ context.Context) ([]dao.PlanetariumDome, error) {
	return nil, nil
}

func (s *stubCatalogDAO) UpdateDome(_ context.Context, dome dao.PlanetariumDome) (dao.PlanetariumDome, error) {
	return dome, nil
}

func (s *stubCatalogDAO) DeleteDome(_ context.Context, _ uint) error {
	return nil
}

func (s *stubCatalogDAO) InsertSession(_ context.Context, session dao.ShowSession) (dao.ShowSession, error) {
	return session, nil
}

func (s *stubCatalogDAO) FindSessionByID(_ context.Context, id uint) (dao.ShowSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return dao.ShowSession{}, dao.ErrSessionNotFound
	}

	return session, nil
}

func (s *stubCatalogDAO) ListSessions(_ context.Context, _, _ []uint) ([]dao.ShowSession, error) {
	sessions := make([]dao.ShowSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (s *stubCatalogDAO) ListSessionsByDomeID(_ context.Context, _ uint) ([]dao.ShowSession, error) {
	return nil, nil
}

func (s *stubCatalogDAO) UpdateSession(_ context.Context, session dao.ShowSession) (dao.ShowSession, error) {
	return session, nil
}

func (s *stubCatalogDAO) DeleteSession(_ context.Context, _ uint) error {
	return nil
}

func (s *stubCatalogDAO) CountTicketsBySessionIDs(_ context.Context, sessionIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int)
	for _, id := range sessionIDs {
		if sold, ok := s.counts[id]; ok {
			counts[id] = sold
		}
	}

	return counts, nil
}

func newStubSession(id uint, rows, seatsInRow int) dao.ShowSession {
	return dao.ShowSession{
		ID: id,
		AstronomyShow: dao.AstronomyShow{
			ID:    1,
			Title: "Northern Lights",
		},
		AstronomyShowID: 1,
		PlanetariumDome: dao.PlanetariumDome{
			ID:         1,
			Name:       "Main Dome",
			Rows:       rows,
			SeatsInRow: seatsInRow,
		},
		PlanetariumDomeID: 1,
		ShowTime:          time.Date(2026, 9, 1, 20, 0, 0, 0, time.UTC),
	}
}

func TestFindSessionByID_ComputesAvailability(t *testing.T) {
	// Capacity 50, 3 sold.
	stub := &stubCatalogDAO{
		sessions: map[uint]dao.ShowSession{1: newStubSession(1, 5, 10)},
		counts:   map[uint]int{1: 3},
	}
	repo := NewCatalogRepository(stub)

	session, err := repo.FindSessionByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, 3, session.TicketsSold)
	assert.Equal(t, 47, session.TicketsLeft)
	assert.Equal(t, session.PlanetariumDome.Capacity(), session.TicketsSold+session.TicketsLeft)
}

func TestFindSessionByID_NoTicketsSold(t *testing.T) {
	stub := &stubCatalogDAO{
		sessions: map[uint]dao.ShowSession{1: newStubSession(1, 10, 12)},
		counts:   map[uint]int{},
	}
	repo := NewCatalogRepository(stub)

	session, err := repo.FindSessionByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Zero(t, session.TicketsSold)
	assert.Equal(t, 120, session.TicketsLeft)
}

func TestListSessions_AvailabilityPerSession(t *testing.T) {
	stub := &stubCatalogDAO{
		sessions: map[uint]dao.ShowSession{
			1: newStubSession(1, 5, 10),
			2: newStubSession(2, 5, 10),
		},
		counts: map[uint]int{1: 50},
	}
	repo := NewCatalogRepository(stub)

	sessions, err := repo.ListSessions(context.Background(), nil, nil)

	require.NoError(t, err)
	require.Len(t, sessions, 2)

	byID := make(map[uint]int)
	for _, session := range sessions {
		byID[session.ID] = session.TicketsLeft
	}

	// A sold-out session reports zero seats left.
	assert.Equal(t, 0, byID[1])
	assert.Equal(t, 50, byID[2])
}
