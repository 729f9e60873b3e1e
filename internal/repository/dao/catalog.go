package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrThemeExists     = errors.New("show theme already exists")
	ErrThemeNotFound   = errors.New("show theme not found")
	ErrShowNotFound    = errors.New("astronomy show not found")
	ErrDomeExists      = errors.New("planetarium dome already exists")
	ErrDomeNotFound    = errors.New("planetarium dome not found")
	ErrSessionNotFound = errors.New("show session not found")
)

type ShowTheme struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type AstronomyShow struct {
	ID uint `gorm:"primaryKey"`

	Title       string      `gorm:"not null"`
	Description string      `gorm:"not null"`
	Themes      []ShowTheme `gorm:"many2many:astronomy_show_themes;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PlanetariumDome struct {
	ID uint `gorm:"primaryKey"`

	Name       string `gorm:"unique;not null"`
	Rows       int    `gorm:"not null"`
	SeatsInRow int    `gorm:"not null"`
	ImageURL   string

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type ShowSession struct {
	ID uint `gorm:"primaryKey"`

	AstronomyShowID   uint            `gorm:"not null;index"`
	AstronomyShow     AstronomyShow   `gorm:"constraint:OnDelete:CASCADE"`
	PlanetariumDomeID uint            `gorm:"not null;index"`
	PlanetariumDome   PlanetariumDome `gorm:"constraint:OnDelete:CASCADE"`
	ShowTime          time.Time       `gorm:"not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

func (d *CatalogDAO) InsertTheme(ctx context.Context, theme ShowTheme) (ShowTheme, error) {
	result := d.db.WithContext(ctx).Create(&theme)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_show_themes_name"`) {
			return ShowTheme{}, ErrThemeExists
		}

		return ShowTheme{}, result.Error
	}

	return theme, nil
}

func (d *CatalogDAO) ListThemes(ctx context.Context) ([]ShowTheme, error) {
	var themes []ShowTheme

	result := d.db.WithContext(ctx).Order("id").Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}

	return themes, nil
}

// FindThemesByIDs returns ErrThemeNotFound when any requested id is missing.
func (d *CatalogDAO) FindThemesByIDs(ctx context.Context, ids []uint) ([]ShowTheme, error) {
	var themes []ShowTheme

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&themes)
	if result.Error != nil {
		return nil, result.Error
	}

	if len(themes) != len(ids) {
		return nil, ErrThemeNotFound
	}

	return themes, nil
}

func (d *CatalogDAO) InsertShow(ctx context.Context, show AstronomyShow) (AstronomyShow, error) {
	result := d.db.WithContext(ctx).Create(&show)
	if result.Error != nil {
		return AstronomyShow{}, result.Error
	}

	return show, nil
}

func (d *CatalogDAO) FindShowByID(ctx context.Context, id uint) (AstronomyShow, error) {
	var show AstronomyShow

	result := d.db.WithContext(ctx).Preload("Themes").First(&show, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AstronomyShow{}, ErrShowNotFound
		}

		return AstronomyShow{}, result.Error
	}

	return show, nil
}

func (d *CatalogDAO) ListShows(ctx context.Context) ([]AstronomyShow, error) {
	var shows []AstronomyShow

	result := d.db.WithContext(ctx).Preload("Themes").Order("id").Find(&shows)
	if result.Error != nil {
		return nil, result.Error
	}

	return shows, nil
}

func (d *CatalogDAO) UpdateShow(ctx context.Context, show AstronomyShow) (AstronomyShow, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&AstronomyShow{ID: show.ID}).
			Updates(map[string]any{"title": show.Title, "description": show.Description})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShowNotFound
		}

		return tx.Model(&AstronomyShow{ID: show.ID}).Association("Themes").Replace(show.Themes)
	})
	if err != nil {
		return AstronomyShow{}, err
	}

	return d.FindShowByID(ctx, show.ID)
}

func (d *CatalogDAO) DeleteShow(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&AstronomyShow{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShowNotFound
	}

	return nil
}

func (d *CatalogDAO) InsertDome(ctx context.Context, dome PlanetariumDome) (PlanetariumDome, error) {
	result := d.db.WithContext(ctx).Create(&dome)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_planetarium_domes_name"`) {
			return PlanetariumDome{}, ErrDomeExists
		}

		return PlanetariumDome{}, result.Error
	}

	return dome, nil
}

func (d *CatalogDAO) FindDomeByID(ctx context.Context, id uint) (PlanetariumDome, error) {
	var dome PlanetariumDome

	result := d.db.WithContext(ctx).First(&dome, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PlanetariumDome{}, ErrDomeNotFound
		}

		return PlanetariumDome{}, result.Error
	}

	return dome, nil
}

func (d *CatalogDAO) ListDomes(ctx context.Context) ([]PlanetariumDome, error) {
	var domes []PlanetariumDome

	result := d.db.WithContext(ctx).Order("id").Find(&domes)
	if result.Error != nil {
		return nil, result.Error
	}

	return domes, nil
}

func (d *CatalogDAO) UpdateDome(ctx context.Context, dome PlanetariumDome) (PlanetariumDome, error) {
	result := d.db.WithContext(ctx).Model(&PlanetariumDome{ID: dome.ID}).
		Updates(map[string]any{
			"name":         dome.Name,
			"rows":         dome.Rows,
			"seats_in_row": dome.SeatsInRow,
			"image_url":    dome.ImageURL,
		})
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, `unique constraint "uni_planetarium_domes_name"`) {
			return PlanetariumDome{}, ErrDomeExists
		}

		return PlanetariumDome{}, result.Error
	}
	if result.RowsAffected == 0 {
		return PlanetariumDome{}, ErrDomeNotFound
	}

	return d.FindDomeByID(ctx, dome.ID)
}

func (d *CatalogDAO) DeleteDome(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&PlanetariumDome{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDomeNotFound
	}

	return nil
}

func (d *CatalogDAO) InsertSession(ctx context.Context, session ShowSession) (ShowSession, error) {
	result := d.db.WithContext(ctx).Omit("AstronomyShow", "PlanetariumDome").Create(&session)
	if result.Error != nil {
		return ShowSession{}, result.Error
	}

	return d.FindSessionByID(ctx, session.ID)
}

func (d *CatalogDAO) FindSessionByID(ctx context.Context, id uint) (ShowSession, error) {
	var session ShowSession

	result := d.db.WithContext(ctx).
		Preload("AstronomyShow.Themes").
		Preload("PlanetariumDome").
		First(&session, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ShowSession{}, ErrSessionNotFound
		}

		return ShowSession{}, result.Error
	}

	return session, nil
}

// ListSessions filters by astronomy show ids and planetarium dome ids when
// either list is non-empty.
func (d *CatalogDAO) ListSessions(ctx context.Context, showIDs, domeIDs []uint) ([]ShowSession, error) {
	query := d.db.WithContext(ctx).
		Preload("AstronomyShow.Themes").
		Preload("PlanetariumDome").
		Order("id")

	if len(showIDs) > 0 {
		query = query.Where("astronomy_show_id IN ?", showIDs)
	}
	if len(domeIDs) > 0 {
		query = query.Where("planetarium_dome_id IN ?", domeIDs)
	}

	var sessions []ShowSession
	result := query.Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *CatalogDAO) ListSessionsByDomeID(ctx context.Context, domeID uint) ([]ShowSession, error) {
	var sessions []ShowSession

	result := d.db.WithContext(ctx).
		Preload("AstronomyShow.Themes").
		Preload("PlanetariumDome").
		Where("planetarium_dome_id = ?", domeID).
		Order("id").
		Find(&sessions)
	if result.Error != nil {
		return nil, result.Error
	}

	return sessions, nil
}

func (d *CatalogDAO) UpdateSession(ctx context.Context, session ShowSession) (ShowSession, error) {
	result := d.db.WithContext(ctx).Model(&ShowSession{ID: session.ID}).
		Updates(map[string]any{
			"astronomy_show_id":   session.AstronomyShowID,
			"planetarium_dome_id": session.PlanetariumDomeID,
			"show_time":           session.ShowTime,
		})
	if result.Error != nil {
		return ShowSession{}, result.Error
	}
	if result.RowsAffected == 0 {
		return ShowSession{}, ErrSessionNotFound
	}

	return d.FindSessionByID(ctx, session.ID)
}

func (d *CatalogDAO) DeleteSession(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Delete(&ShowSession{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}

	return nil
}

// CountTicketsBySessionIDs computes sold-ticket counts for many sessions with
// one grouped query, so listings never degrade into per-session counts.
func (d *CatalogDAO) CountTicketsBySessionIDs(ctx context.Context, sessionIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(sessionIDs))
	if len(sessionIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ShowSessionID uint
		Sold          int
	}

	result := d.db.WithContext(ctx).Model(&Ticket{}).
		Select("show_session_id, COUNT(*) AS sold").
		Where("show_session_id IN ?", sessionIDs).
		Group("show_session_id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	for _, row := range rows {
		counts[row.ShowSessionID] = row.Sold
	}

	return counts, nil
}
