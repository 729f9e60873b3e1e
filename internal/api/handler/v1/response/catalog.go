package response

import "github.com/astroreserve/planetarium-api/internal/domain"

type ThemeView struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewThemeView(theme domain.ShowTheme) ThemeView {
	return ThemeView{
		ID:   theme.ID,
		Name: theme.Name,
	}
}

func NewThemeViews(themes []domain.ShowTheme) []ThemeView {
	views := make([]ThemeView, len(themes))
	for i, theme := range themes {
		views[i] = NewThemeView(theme)
	}

	return views
}

// ShowList is the listing shape: themes flattened to their names.
type ShowList struct {
	ID          uint     `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Themes      []string `json:"themes"`
}

func NewShowList(show domain.AstronomyShow) ShowList {
	names := make([]string, len(show.Themes))
	for i, theme := range show.Themes {
		names[i] = theme.Name
	}

	return ShowList{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Themes:      names,
	}
}

func NewShowLists(shows []domain.AstronomyShow) []ShowList {
	views := make([]ShowList, len(shows))
	for i, show := range shows {
		views[i] = NewShowList(show)
	}

	return views
}

// ShowDetail embeds full theme objects.
type ShowDetail struct {
	ID          uint        `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Themes      []ThemeView `json:"themes"`
}

func NewShowDetail(show domain.AstronomyShow) ShowDetail {
	return ShowDetail{
		ID:          show.ID,
		Title:       show.Title,
		Description: show.Description,
		Themes:      NewThemeViews(show.Themes),
	}
}

type DomeView struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Rows       int    `json:"rows"`
	SeatsInRow int    `json:"seats_in_row"`
	Capacity   int    `json:"capacity"`
	ImageURL   string `json:"image_url,omitempty"`
}

func NewDomeView(dome domain.PlanetariumDome) DomeView {
	return DomeView{
		ID:         dome.ID,
		Name:       dome.Name,
		Rows:       dome.Rows,
		SeatsInRow: dome.SeatsInRow,
		Capacity:   dome.Capacity(),
		ImageURL:   dome.ImageURL,
	}
}

func NewDomeViews(domes []domain.PlanetariumDome) []DomeView {
	views := make([]DomeView, len(domes))
	for i, dome := range domes {
		views[i] = NewDomeView(dome)
	}

	return views
}

// DomeDetail nests the dome's sessions, each with availability.
type DomeDetail struct {
	DomeView
	Sessions []SessionList `json:"sessions"`
}

func NewDomeDetail(dome domain.PlanetariumDome, sessions []domain.ShowSession) DomeDetail {
	return DomeDetail{
		DomeView: NewDomeView(dome),
		Sessions: NewSessionLists(sessions),
	}
}
