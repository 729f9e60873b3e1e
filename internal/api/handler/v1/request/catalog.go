package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

type CreateThemeRequest struct {
	Name string `json:"name"`
}

func (req *CreateThemeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
	)
}

type CreateShowRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ThemeIDs    []uint `json:"theme_ids"`
}

func (req *CreateShowRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Description, validation.Required),
	)
}

type UpdateShowRequest struct {
	CreateShowRequest
}

type CreateDomeRequest struct {
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	ImageURL   string `json:"image_url"`
}

func (req *CreateDomeRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.Rows, validation.Required, validation.Min(1)),
		validation.Field(&req.SeatsInRow, validation.Required, validation.Min(1)),
		validation.Field(&req.ImageURL, is.URL),
	)
}

type UpdateDomeRequest struct {
	CreateDomeRequest
}

type CreateSessionRequest struct {
	AstronomyShowID   uint   `json:"astronomy_show"`
	PlanetariumDomeID uint   `json:"planetarium_dome"`
	ShowTime          string `json:"show_time"`
}

func (req *CreateSessionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AstronomyShowID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.PlanetariumDomeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.ShowTime, validation.Required, validation.Date("2006-01-02T15:04:05Z07:00")),
	)
}

type UpdateSessionRequest struct {
	CreateSessionRequest
}
