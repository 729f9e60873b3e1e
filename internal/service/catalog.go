package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/repository"
)

var (
	ErrThemeExists     = repository.ErrThemeExists
	ErrThemeNotFound   = repository.ErrThemeNotFound
	ErrShowNotFound    = repository.ErrShowNotFound
	ErrDomeExists      = repository.ErrDomeExists
	ErrDomeNotFound    = repository.ErrDomeNotFound
	ErrSessionNotFound = repository.ErrSessionNotFound
)

type CatalogRepository interface {
	CreateTheme(ctx context.Context, theme domain.ShowTheme) (domain.ShowTheme, error)
	ListThemes(ctx context.Context) ([]domain.ShowTheme, error)
	FindThemesByIDs(ctx context.Context, ids []uint) ([]domain.ShowTheme, error)
	CreateShow(ctx context.Context, show domain.AstronomyShow) (domain.AstronomyShow, error)
	FindShowByID(ctx context.Context, id uint) (domain.AstronomyShow, error)
	ListShows(ctx context.Context) ([]domain.AstronomyShow, error)
	UpdateShow(ctx context.Context, show domain.AstronomyShow) (domain.AstronomyShow, error)
	DeleteShow(ctx context.Context, id uint) error
	CreateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error)
	FindDomeByID(ctx context.Context, id uint) (domain.PlanetariumDome, error)
	ListDomes(ctx context.Context) ([]domain.PlanetariumDome, error)
	UpdateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error)
	DeleteDome(ctx context.Context, id uint) error
	CreateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error)
	FindSessionByID(ctx context.Context, id uint) (domain.ShowSession, error)
	ListSessions(ctx context.Context, showIDs, domeIDs []uint) ([]domain.ShowSession, error)
	ListSessionsByDomeID(ctx context.Context, domeID uint) ([]domain.ShowSession, error)
	UpdateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error)
	DeleteSession(ctx context.Context, id uint) error
}

type CatalogService struct {
	repo CatalogRepository
}

func NewCatalogService(repo CatalogRepository) *CatalogService {
	return &CatalogService{
		repo: repo,
	}
}

func (s *CatalogService) CreateTheme(ctx context.Context, theme domain.ShowTheme) (domain.ShowTheme, error) {
	created, err := s.repo.CreateTheme(ctx, theme)
	if err != nil {
		return domain.ShowTheme{}, fmt.Errorf("s.repo.CreateTheme -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) ListThemes(ctx context.Context) ([]domain.ShowTheme, error) {
	themes, err := s.repo.ListThemes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListThemes -> %w", err)
	}

	return themes, nil
}

func (s *CatalogService) CreateShow(ctx context.Context, show domain.AstronomyShow, themeIDs []uint) (domain.AstronomyShow, error) {
	themes, err := s.resolveThemes(ctx, themeIDs)
	if err != nil {
		return domain.AstronomyShow{}, err
	}
	show.Themes = themes

	created, err := s.repo.CreateShow(ctx, show)
	if err != nil {
		return domain.AstronomyShow{}, fmt.Errorf("s.repo.CreateShow -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetShow(ctx context.Context, id uint) (domain.AstronomyShow, error) {
	show, err := s.repo.FindShowByID(ctx, id)
	if err != nil {
		return domain.AstronomyShow{}, fmt.Errorf("s.repo.FindShowByID -> %w", err)
	}

	return show, nil
}

func (s *CatalogService) ListShows(ctx context.Context) ([]domain.AstronomyShow, error) {
	shows, err := s.repo.ListShows(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListShows -> %w", err)
	}

	return shows, nil
}

func (s *CatalogService) UpdateShow(ctx context.Context, show domain.AstronomyShow, themeIDs []uint) (domain.AstronomyShow, error) {
	themes, err := s.resolveThemes(ctx, themeIDs)
	if err != nil {
		return domain.AstronomyShow{}, err
	}
	show.Themes = themes

	updated, err := s.repo.UpdateShow(ctx, show)
	if err != nil {
		return domain.AstronomyShow{}, fmt.Errorf("s.repo.UpdateShow -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteShow(ctx context.Context, id uint) error {
	if err := s.repo.DeleteShow(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteShow -> %w", err)
	}

	return nil
}

func (s *CatalogService) CreateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error) {
	created, err := s.repo.CreateDome(ctx, dome)
	if err != nil {
		return domain.PlanetariumDome{}, fmt.Errorf("s.repo.CreateDome -> %w", err)
	}

	return created, nil
}

// GetDome returns the dome together with its sessions, each carrying
// computed availability.
func (s *CatalogService) GetDome(ctx context.Context, id uint) (domain.PlanetariumDome, []domain.ShowSession, error) {
	dome, err := s.repo.FindDomeByID(ctx, id)
	if err != nil {
		return domain.PlanetariumDome{}, nil, fmt.Errorf("s.repo.FindDomeByID -> %w", err)
	}

	sessions, err := s.repo.ListSessionsByDomeID(ctx, id)
	if err != nil {
		return domain.PlanetariumDome{}, nil, fmt.Errorf("s.repo.ListSessionsByDomeID -> %w", err)
	}

	return dome, sessions, nil
}

func (s *CatalogService) ListDomes(ctx context.Context) ([]domain.PlanetariumDome, error) {
	domes, err := s.repo.ListDomes(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListDomes -> %w", err)
	}

	return domes, nil
}

func (s *CatalogService) UpdateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error) {
	updated, err := s.repo.UpdateDome(ctx, dome)
	if err != nil {
		return domain.PlanetariumDome{}, fmt.Errorf("s.repo.UpdateDome -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteDome(ctx context.Context, id uint) error {
	if err := s.repo.DeleteDome(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteDome -> %w", err)
	}

	return nil
}

// CreateSession requires both the show and the dome to exist. Sessions
// sharing a dome are allowed to overlap in time; scheduling conflicts are
// not this system's concern.
func (s *CatalogService) CreateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error) {
	if _, err := s.repo.FindShowByID(ctx, session.AstronomyShowID); err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return domain.ShowSession{}, ErrShowNotFound
		}

		return domain.ShowSession{}, fmt.Errorf("s.repo.FindShowByID -> %w", err)
	}

	if _, err := s.repo.FindDomeByID(ctx, session.PlanetariumDomeID); err != nil {
		if errors.Is(err, ErrDomeNotFound) {
			return domain.ShowSession{}, ErrDomeNotFound
		}

		return domain.ShowSession{}, fmt.Errorf("s.repo.FindDomeByID -> %w", err)
	}

	created, err := s.repo.CreateSession(ctx, session)
	if err != nil {
		return domain.ShowSession{}, fmt.Errorf("s.repo.CreateSession -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) GetSession(ctx context.Context, id uint) (domain.ShowSession, error) {
	session, err := s.repo.FindSessionByID(ctx, id)
	if err != nil {
		return domain.ShowSession{}, fmt.Errorf("s.repo.FindSessionByID -> %w", err)
	}

	return session, nil
}

func (s *CatalogService) ListSessions(ctx context.Context, showIDs, domeIDs []uint) ([]domain.ShowSession, error) {
	sessions, err := s.repo.ListSessions(ctx, showIDs, domeIDs)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListSessions -> %w", err)
	}

	return sessions, nil
}

func (s *CatalogService) UpdateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error) {
	if _, err := s.repo.FindShowByID(ctx, session.AstronomyShowID); err != nil {
		if errors.Is(err, ErrShowNotFound) {
			return domain.ShowSession{}, ErrShowNotFound
		}

		return domain.ShowSession{}, fmt.Errorf("s.repo.FindShowByID -> %w", err)
	}

	if _, err := s.repo.FindDomeByID(ctx, session.PlanetariumDomeID); err != nil {
		if errors.Is(err, ErrDomeNotFound) {
			return domain.ShowSession{}, ErrDomeNotFound
		}

		return domain.ShowSession{}, fmt.Errorf("s.repo.FindDomeByID -> %w", err)
	}

	updated, err := s.repo.UpdateSession(ctx, session)
	if err != nil {
		return domain.ShowSession{}, fmt.Errorf("s.repo.UpdateSession -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteSession(ctx context.Context, id uint) error {
	if err := s.repo.DeleteSession(ctx, id); err != nil {
		return fmt.Errorf("s.repo.DeleteSession -> %w", err)
	}

	return nil
}

func (s *CatalogService) resolveThemes(ctx context.Context, themeIDs []uint) ([]domain.ShowTheme, error) {
	if len(themeIDs) == 0 {
		return nil, nil
	}

	themes, err := s.repo.FindThemesByIDs(ctx, themeIDs)
	if err != nil {
		if errors.Is(err, ErrThemeNotFound) {
			return nil, ErrThemeNotFound
		}

		return nil, fmt.Errorf("s.repo.FindThemesByIDs -> %w", err)
	}

	return themes, nil
}
