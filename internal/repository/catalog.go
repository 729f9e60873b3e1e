package repository

import (
	"context"
	"fmt"

	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/repository/dao"
)

var (
	ErrThemeExists     = dao.ErrThemeExists
	ErrThemeNotFound   = dao.ErrThemeNotFound
	ErrShowNotFound    = dao.ErrShowNotFound
	ErrDomeExists      = dao.ErrDomeExists
	ErrDomeNotFound    = dao.ErrDomeNotFound
	ErrSessionNotFound = dao.ErrSessionNotFound
)

type CatalogDAO interface {
	InsertTheme(ctx context.Context, theme dao.ShowTheme) (dao.ShowTheme, error)
	ListThemes(ctx context.Context) ([]dao.ShowTheme, error)
	FindThemesByIDs(ctx context.Context, ids []uint) ([]dao.ShowTheme, error)
	InsertShow(ctx context.Context, show dao.AstronomyShow) (dao.AstronomyShow, error)
	FindShowByID(ctx context.Context, id uint) (dao.AstronomyShow, error)
	ListShows(ctx context.Context) ([]dao.AstronomyShow, error)
	UpdateShow(ctx context.Context, show dao.AstronomyShow) (dao.AstronomyShow, error)
	DeleteShow(ctx context.Context, id uint) error
	InsertDome(ctx context.Context, dome dao.PlanetariumDome) (dao.PlanetariumDome, error)
	FindDomeByID(ctx context.Context, id uint) (dao.PlanetariumDome, error)
	ListDomes(ctx context.Context) ([]dao.PlanetariumDome, error)
	UpdateDome(ctx context.Context, dome dao.PlanetariumDome) (dao.PlanetariumDome, error)
	DeleteDome(ctx context.Context, id uint) error
	InsertSession(ctx context.Context, session dao.ShowSession) (dao.ShowSession, error)
	FindSessionByID(ctx context.Context, id uint) (dao.ShowSession, error)
	ListSessions(ctx context.Context, showIDs, domeIDs []uint) ([]dao.ShowSession, error)
	ListSessionsByDomeID(ctx context.Context, domeID uint) ([]dao.ShowSession, error)
	UpdateSession(ctx context.Context, session dao.ShowSession) (dao.ShowSession, error)
	DeleteSession(ctx context.Context, id uint) error
	CountTicketsBySessionIDs(ctx context.Context, sessionIDs []uint) (map[uint]int, error)
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

func (r *CatalogRepository) CreateTheme(ctx context.Context, theme domain.ShowTheme) (domain.ShowTheme, error) {
	created, err := r.dao.InsertTheme(ctx, dao.ShowTheme{Name: theme.Name})
	if err != nil {
		return domain.ShowTheme{}, fmt.Errorf("r.dao.InsertTheme -> %w", err)
	}

	return r.themeDAOToDomain(created), nil
}

func (r *CatalogRepository) ListThemes(ctx context.Context) ([]domain.ShowTheme, error) {
	found, err := r.dao.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListThemes -> %w", err)
	}

	return r.themesDAOToDomain(found), nil
}

func (r *CatalogRepository) FindThemesByIDs(ctx context.Context, ids []uint) ([]domain.ShowTheme, error) {
	found, err := r.dao.FindThemesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindThemesByIDs -> %w", err)
	}

	return r.themesDAOToDomain(found), nil
}

func (r *CatalogRepository) CreateShow(ctx context.Context, show domain.AstronomyShow) (domain.AstronomyShow, error) {
	created, err := r.dao.InsertShow(ctx, r.showDomainToDAO(show))
	if err != nil {
		return domain.AstronomyShow{}, fmt.Errorf("r.dao.InsertShow -> %w", err)
	}

	return r.showDAOToDomain(created), nil
}

func (r *CatalogRepository) FindShowByID(ctx context.Context, id uint) (domain.AstronomyShow, error) {
	found, err := r.dao.FindShowByID(ctx, id)
	if err != nil {
		return domain.AstronomyShow{}, fmt.Errorf("r.dao.FindShowByID -> %w", err)
	}

	return r.showDAOToDomain(found), nil
}

func (r *CatalogRepository) ListShows(ctx context.Context) ([]domain.AstronomyShow, error) {
	found, err := r.dao.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListShows -> %w", err)
	}

	shows := make([]domain.AstronomyShow, len(found))
	for i, show := range found {
		shows[i] = r.showDAOToDomain(show)
	}

	return shows, nil
}

func (r *CatalogRepository) UpdateShow(ctx context.Context, show domain.AstronomyShow) (domain.AstronomyShow, error) {
	updated, err := r.dao.UpdateShow(ctx, r.showDomainToDAO(show))
	if err != nil {
		return domain.AstronomyShow{}, fmt.Errorf("r.dao.UpdateShow -> %w", err)
	}

	return r.showDAOToDomain(updated), nil
}

func (r *CatalogRepository) DeleteShow(ctx context.Context, id uint) error {
	if err := r.dao.DeleteShow(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteShow -> %w", err)
	}

	return nil
}

func (r *CatalogRepository) CreateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error) {
	created, err := r.dao.InsertDome(ctx, r.domeDomainToDAO(dome))
	if err != nil {
		return domain.PlanetariumDome{}, fmt.Errorf("r.dao.InsertDome -> %w", err)
	}

	return r.domeDAOToDomain(created), nil
}

func (r *CatalogRepository) FindDomeByID(ctx context.Context, id uint) (domain.PlanetariumDome, error) {
	found, err := r.dao.FindDomeByID(ctx, id)
	if err != nil {
		return domain.PlanetariumDome{}, fmt.Errorf("r.dao.FindDomeByID -> %w", err)
	}

	return r.domeDAOToDomain(found), nil
}

func (r *CatalogRepository) ListDomes(ctx context.Context) ([]domain.PlanetariumDome, error) {
	found, err := r.dao.ListDomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListDomes -> %w", err)
	}

	domes := make([]domain.PlanetariumDome, len(found))
	for i, dome := range found {
		domes[i] = r.domeDAOToDomain(dome)
	}

	return domes, nil
}

func (r *CatalogRepository) UpdateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error) {
	updated, err := r.dao.UpdateDome(ctx, r.domeDomainToDAO(dome))
	if err != nil {
		return domain.PlanetariumDome{}, fmt.Errorf("r.dao.UpdateDome -> %w", err)
	}

	return r.domeDAOToDomain(updated), nil
}

func (r *CatalogRepository) DeleteDome(ctx context.Context, id uint) error {
	if err := r.dao.DeleteDome(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteDome -> %w", err)
	}

	return nil
}

func (r *CatalogRepository) CreateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error) {
	created, err := r.dao.InsertSession(ctx, dao.ShowSession{
		AstronomyShowID:   session.AstronomyShowID,
		PlanetariumDomeID: session.PlanetariumDomeID,
		ShowTime:          session.ShowTime,
	})
	if err != nil {
		return domain.ShowSession{}, fmt.Errorf("r.dao.InsertSession -> %w", err)
	}

	return r.withAvailability(ctx, created)
}

func (r *CatalogRepository) FindSessionByID(ctx context.Context, id uint) (domain.ShowSession, error) {
	found, err := r.dao.FindSessionByID(ctx, id)
	if err != nil {
		return domain.ShowSession{}, fmt.Errorf("r.dao.FindSessionByID -> %w", err)
	}

	return r.withAvailability(ctx, found)
}

func (r *CatalogRepository) ListSessions(ctx context.Context, showIDs, domeIDs []uint) ([]domain.ShowSession, error) {
	found, err := r.dao.ListSessions(ctx, showIDs, domeIDs)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSessions -> %w", err)
	}

	return r.allWithAvailability(ctx, found)
}

func (r *CatalogRepository) ListSessionsByDomeID(ctx context.Context, domeID uint) ([]domain.ShowSession, error) {
	found, err := r.dao.ListSessionsByDomeID(ctx, domeID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListSessionsByDomeID -> %w", err)
	}

	return r.allWithAvailability(ctx, found)
}

func (r *CatalogRepository) UpdateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error) {
	updated, err := r.dao.UpdateSession(ctx, dao.ShowSession{
		ID:                session.ID,
		AstronomyShowID:   session.AstronomyShowID,
		PlanetariumDomeID: session.PlanetariumDomeID,
		ShowTime:          session.ShowTime,
	})
	if err != nil {
		return domain.ShowSession{}, fmt.Errorf("r.dao.UpdateSession -> %w", err)
	}

	return r.withAvailability(ctx, updated)
}

func (r *CatalogRepository) DeleteSession(ctx context.Context, id uint) error {
	if err := r.dao.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteSession -> %w", err)
	}

	return nil
}

// withAvailability fills TicketsSold/TicketsLeft for one session.
func (r *CatalogRepository) withAvailability(ctx context.Context, session dao.ShowSession) (domain.ShowSession, error) {
	sessions, err := r.allWithAvailability(ctx, []dao.ShowSession{session})
	if err != nil {
		return domain.ShowSession{}, err
	}

	return sessions[0], nil
}

// allWithAvailability derives seat availability for a batch of sessions from
// a single grouped ticket count. Availability is always computed at query
// time so a listing can never serve stale counts from a cache.
func (r *CatalogRepository) allWithAvailability(ctx context.Context, found []dao.ShowSession) ([]domain.ShowSession, error) {
	ids := make([]uint, len(found))
	for i, session := range found {
		ids[i] = session.ID
	}

	counts, err := r.dao.CountTicketsBySessionIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.CountTicketsBySessionIDs -> %w", err)
	}

	sessions := make([]domain.ShowSession, len(found))
	for i, session := range found {
		mapped := r.sessionDAOToDomain(session)
		sold := counts[session.ID]
		mapped.TicketsSold = sold
		mapped.TicketsLeft = mapped.PlanetariumDome.Capacity() - sold
		sessions[i] = mapped
	}

	return sessions, nil
}

func (r *CatalogRepository) themeDAOToDomain(t dao.ShowTheme) domain.ShowTheme {
	return domain.ShowTheme{
		ID:   t.ID,
		Name: t.Name,
	}
}

func (r *CatalogRepository) themesDAOToDomain(themes []dao.ShowTheme) []domain.ShowTheme {
	mapped := make([]domain.ShowTheme, len(themes))
	for i, theme := range themes {
		mapped[i] = r.themeDAOToDomain(theme)
	}

	return mapped
}

func (r *CatalogRepository) showDomainToDAO(show domain.AstronomyShow) dao.AstronomyShow {
	themes := make([]dao.ShowTheme, len(show.Themes))
	for i, theme := range show.Themes {
		themes[i] = dao.ShowTheme{ID: theme.ID, Name: theme.Name}
	}

	return dao.AstronomyShow{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Themes:      themes,
	}
}

func (r *CatalogRepository) showDAOToDomain(show dao.AstronomyShow) domain.AstronomyShow {
	return domain.AstronomyShow{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Themes:      r.themesDAOToDomain(show.Themes),
		CreatedAt:   show.CreatedAt,
		UpdatedAt:   show.UpdatedAt,
	}
}

func (r *CatalogRepository) domeDomainToDAO(dome domain.PlanetariumDome) dao.PlanetariumDome {
	return dao.PlanetariumDome{
		ID:         dome.ID,
		Name:       dome.Name,
		Rows:       dome.Rows,
		SeatsInRow: dome.SeatsInRow,
		ImageURL:   dome.ImageURL,
	}
}

func (r *CatalogRepository) domeDAOToDomain(dome dao.PlanetariumDome) domain.PlanetariumDome {
	return domain.PlanetariumDome{
		ID:         dome.ID,
		Name:       dome.Name,
		Rows:       dome.Rows,
		SeatsInRow: dome.SeatsInRow,
		ImageURL:   dome.ImageURL,
		CreatedAt:  dome.CreatedAt,
		UpdatedAt:  dome.UpdatedAt,
	}
}

func (r *CatalogRepository) sessionDAOToDomain(session dao.ShowSession) domain.ShowSession {
	return domain.ShowSession{
		ID:                session.ID,
		AstronomyShowID:   session.AstronomyShowID,
		PlanetariumDomeID: session.PlanetariumDomeID,
		ShowTime:          session.ShowTime,
		AstronomyShow:     r.showDAOToDomain(session.AstronomyShow),
		PlanetariumDome:   r.domeDAOToDomain(session.PlanetariumDome),
	}
}
