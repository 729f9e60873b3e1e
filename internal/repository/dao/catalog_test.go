package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertTheme_DuplicateName(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)

	name := uniq("theme")

	_, err := d.InsertTheme(ctx, ShowTheme{Name: name})
	require.NoError(t, err)

	_, err = d.InsertTheme(ctx, ShowTheme{Name: name})
	require.ErrorIs(t, err, ErrThemeExists)
}

func TestFindThemesByIDs_MissingID(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)

	theme, err := d.InsertTheme(ctx, ShowTheme{Name: uniq("theme")})
	require.NoError(t, err)

	themes, err := d.FindThemesByIDs(ctx, []uint{theme.ID})
	require.NoError(t, err)
	assert.Len(t, themes, 1)

	_, err = d.FindThemesByIDs(ctx, []uint{theme.ID, 999999})
	require.ErrorIs(t, err, ErrThemeNotFound)
}

func TestInsertDome_DuplicateName(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)

	name := uniq("dome")

	_, err := d.InsertDome(ctx, PlanetariumDome{Name: name, Rows: 5, SeatsInRow: 10})
	require.NoError(t, err)

	_, err = d.InsertDome(ctx, PlanetariumDome{Name: name, Rows: 8, SeatsInRow: 8})
	require.ErrorIs(t, err, ErrDomeExists)
}

func TestUpdateShow_ReplacesThemes(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)

	first, err := d.InsertTheme(ctx, ShowTheme{Name: uniq("theme")})
	require.NoError(t, err)
	second, err := d.InsertTheme(ctx, ShowTheme{Name: uniq("theme")})
	require.NoError(t, err)

	show, err := d.InsertShow(ctx, AstronomyShow{
		Title:       uniq("show"),
		Description: "desc",
		Themes:      []ShowTheme{first},
	})
	require.NoError(t, err)

	updated, err := d.UpdateShow(ctx, AstronomyShow{
		ID:          show.ID,
		Title:       show.Title,
		Description: "updated",
		Themes:      []ShowTheme{second},
	})
	require.NoError(t, err)

	require.Len(t, updated.Themes, 1)
	assert.Equal(t, second.ID, updated.Themes[0].ID)
	assert.Equal(t, "updated", updated.Description)
}

func TestUpdateShow_NotFound(t *testing.T) {
	requireDB(t)

	_, err := NewCatalogDAO(testDB).UpdateShow(context.Background(), AstronomyShow{
		ID:    999999,
		Title: "ghost",
	})

	require.ErrorIs(t, err, ErrShowNotFound)
}

func TestListSessions_Filters(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)

	showA, err := d.InsertShow(ctx, AstronomyShow{Title: uniq("show"), Description: "a"})
	require.NoError(t, err)
	showB, err := d.InsertShow(ctx, AstronomyShow{Title: uniq("show"), Description: "b"})
	require.NoError(t, err)

	dome, err := d.InsertDome(ctx, PlanetariumDome{Name: uniq("dome"), Rows: 5, SeatsInRow: 10})
	require.NoError(t, err)

	sessionA, err := d.InsertSession(ctx, ShowSession{
		AstronomyShowID:   showA.ID,
		PlanetariumDomeID: dome.ID,
		ShowTime:          time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	_, err = d.InsertSession(ctx, ShowSession{
		AstronomyShowID:   showB.ID,
		PlanetariumDomeID: dome.ID,
		ShowTime:          time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)

	byShow, err := d.ListSessions(ctx, []uint{showA.ID}, nil)
	require.NoError(t, err)
	require.Len(t, byShow, 1)
	assert.Equal(t, sessionA.ID, byShow[0].ID)

	byDome, err := d.ListSessions(ctx, nil, []uint{dome.ID})
	require.NoError(t, err)
	assert.Len(t, byDome, 2)

	both, err := d.ListSessions(ctx, []uint{showB.ID}, []uint{dome.ID})
	require.NoError(t, err)
	assert.Len(t, both, 1)

	none, err := d.ListSessions(ctx, []uint{showA.ID}, []uint{999999})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestCountTicketsBySessionIDs(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)
	reservations := NewReservationDAO(testDB)

	// 5 rows x 10 seats, capacity 50.
	session := seedSession(t, 5, 10)
	empty := seedSession(t, 5, 10)
	user := seedUser(t)

	_, err := reservations.InsertWithTickets(ctx, Reservation{UserID: user.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 1, Seat: 1},
		{ShowSessionID: session.ID, Row: 1, Seat: 2},
		{ShowSessionID: session.ID, Row: 2, Seat: 1},
	})
	require.NoError(t, err)

	counts, err := d.CountTicketsBySessionIDs(ctx, []uint{session.ID, empty.ID})
	require.NoError(t, err)

	assert.Equal(t, 3, counts[session.ID])

	// Sessions without tickets simply have no entry.
	_, ok := counts[empty.ID]
	assert.False(t, ok)
}

func TestDeleteSession_CascadesTickets(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewCatalogDAO(testDB)
	reservations := NewReservationDAO(testDB)

	session := seedSession(t, 5, 10)
	user := seedUser(t)

	_, err := reservations.InsertWithTickets(ctx, Reservation{UserID: user.ID}, []Ticket{
		{ShowSessionID: session.ID, Row: 1, Seat: 1},
	})
	require.NoError(t, err)

	require.NoError(t, d.DeleteSession(ctx, session.ID))

	var count int64
	require.NoError(t, testDB.Model(&Ticket{}).
		Where("show_session_id = ?", session.ID).
		Count(&count).Error)
	assert.Zero(t, count)
}

func TestInsertUser_DuplicateEmail(t *testing.T) {
	requireDB(t)

	ctx := context.Background()
	d := NewUserDAO(testDB)

	email := uniq("user") + "@example.com"

	_, err := d.Insert(ctx, User{Email: email, Password: "hashed", Name: "One"})
	require.NoError(t, err)

	_, err = d.Insert(ctx, User{Email: email, Password: "hashed", Name: "Two"})
	require.ErrorIs(t, err, ErrUserEmailExists)
}
