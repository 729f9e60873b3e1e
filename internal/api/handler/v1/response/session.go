package response

import (
	"time"

	"github.com/astroreserve/planetarium-api/internal/domain"
)

// SessionList is the listing shape: related records flattened to names,
// availability included.
type SessionList struct {
	ID              uint      `json:"id"`
	AstronomyShow   string    `json:"astronomy_show"`
	PlanetariumDome string    `json:"planetarium_dome"`
	ShowTime        time.Time `json:"show_time"`
	TicketsSold     int       `json:"tickets_sold"`
	TicketsLeft     int       `json:"tickets_left"`
}

func NewSessionList(session domain.ShowSession) SessionList {
	return SessionList{
		ID:              session.ID,
		AstronomyShow:   session.AstronomyShow.Title,
		PlanetariumDome: session.PlanetariumDome.Name,
		ShowTime:        session.ShowTime,
		TicketsSold:     session.TicketsSold,
		TicketsLeft:     session.TicketsLeft,
	}
}

func NewSessionLists(sessions []domain.ShowSession) []SessionList {
	views := make([]SessionList, len(sessions))
	for i, session := range sessions {
		views[i] = NewSessionList(session)
	}

	return views
}

// SessionDetail embeds the show and dome views.
type SessionDetail struct {
	ID              uint      `json:"id"`
	AstronomyShow   ShowList  `json:"astronomy_show"`
	PlanetariumDome DomeView  `json:"planetarium_dome"`
	ShowTime        time.Time `json:"show_time"`
	TicketsSold     int       `json:"tickets_sold"`
	TicketsLeft     int       `json:"tickets_left"`
}

func NewSessionDetail(session domain.ShowSession) SessionDetail {
	return SessionDetail{
		ID:              session.ID,
		AstronomyShow:   NewShowList(session.AstronomyShow),
		PlanetariumDome: NewDomeView(session.PlanetariumDome),
		ShowTime:        session.ShowTime,
		TicketsSold:     session.TicketsSold,
		TicketsLeft:     session.TicketsLeft,
	}
}
