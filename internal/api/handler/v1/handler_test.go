package v1

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/astroreserve/planetarium-api/internal/api/middleware"
	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/pkg/jwthelper"
	"github.com/astroreserve/planetarium-api/internal/service"
)

const testSigningKey = "test-signing-key"

func init() {
	gin.SetMode(gin.TestMode)
}

type stubUserService struct {
	users map[uint]domain.User
}

func (s *stubUserService) GetUser(_ context.Context, id uint) (domain.User, error) {
	user, ok := s.users[id]
	if !ok {
		return domain.User{}, service.ErrUserNotFound
	}

	return user, nil
}

type stubReservationService struct {
	bookResult  domain.Reservation
	bookErr     error
	bookCalls   int
	reservation domain.Reservation
	getErr      error
}

func (s *stubReservationService) Book(_ context.Context, _ uint, _ []domain.SeatRequest) (domain.Reservation, error) {
	s.bookCalls++

	if s.bookErr != nil {
		return domain.Reservation{}, s.bookErr
	}

	return s.bookResult, nil
}

func (s *stubReservationService) GetReservation(_ context.Context, _, _ uint) (domain.Reservation, error) {
	if s.getErr != nil {
		return domain.Reservation{}, s.getErr
	}

	return s.reservation, nil
}

func (s *stubReservationService) ListReservations(_ context.Context, _ uint, _, _ int) ([]domain.Reservation, int64, error) {
	return nil, 0, nil
}

func (s *stubReservationService) DeleteReservation(_ context.Context, _, _ uint) error {
	return s.getErr
}

func (s *stubReservationService) GetTicket(_ context.Context, _, _ uint) (domain.Ticket, error) {
	return domain.Ticket{}, s.getErr
}

func (s *stubReservationService) ListTickets(_ context.Context, _ uint) ([]domain.Ticket, error) {
	return nil, nil
}

type stubCatalogService struct {
	themes    []domain.ShowTheme
	createErr error
}

func (s *stubCatalogService) CreateTheme(_ context.Context, theme domain.ShowTheme) (domain.ShowTheme, error) {
	if s.createErr != nil {
		return domain.ShowTheme{}, s.createErr
	}

	theme.ID = uint(len(s.themes) + 1)
	s.themes = append(s.themes, theme)

	return theme, nil
}

func (s *stubCatalogService) ListThemes(_ context.Context) ([]domain.ShowTheme, error) {
	return s.themes, nil
}

func (s *stubCatalogService) CreateShow(_ context.Context, show domain.AstronomyShow, _ []uint) (domain.AstronomyShow, error) {
	return show, s.createErr
}

func (s *stubCatalogService) GetShow(_ context.Context, _ uint) (domain.AstronomyShow, error) {
	return domain.AstronomyShow{}, service.ErrShowNotFound
}

func (s *stubCatalogService) ListShows(_ context.Context) ([]domain.AstronomyShow, error) {
	return nil, nil
}

func (s *stubCatalogService) UpdateShow(_ context.Context, show domain.AstronomyShow, _ []uint) (domain.AstronomyShow, error) {
	return show, s.createErr
}

func (s *stubCatalogService) DeleteShow(_ context.Context, _ uint) error {
	return s.createErr
}

func (s *stubCatalogService) CreateDome(_ context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error) {
	return dome, s.createErr
}

func (s *stubCatalogService) GetDome(_ context.Context, _ uint) (domain.PlanetariumDome, []domain.ShowSession, error) {
	return domain.PlanetariumDome{}, nil, service.ErrDomeNotFound
}

func (s *stubCatalogService) ListDomes(_ context.Context) ([]domain.PlanetariumDome, error) {
	return nil, nil
}

func (s *stubCatalogService) UpdateDome(_ context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error) {
	return dome, s.createErr
}

func (s *stubCatalogService) DeleteDome(_ context.Context, _ uint) error {
	return s.createErr
}

func (s *stubCatalogService) CreateSession(_ context.Context, session domain.ShowSession) (domain.ShowSession, error) {
	return session, s.createErr
}

func (s *stubCatalogService) GetSession(_ context.Context, _ uint) (domain.ShowSession, error) {
	return domain.ShowSession{}, service.ErrSessionNotFound
}

func (s *stubCatalogService) ListSessions(_ context.Context, _, _ []uint) ([]domain.ShowSession, error) {
	return nil, nil
}

func (s *stubCatalogService) UpdateSession(_ context.Context, session domain.ShowSession) (domain.ShowSession, error) {
	return session, s.createErr
}

func (s *stubCatalogService) DeleteSession(_ context.Context, _ uint) error {
	return s.createErr
}

func newTestRouter(reservationSvc ReservationService, catalogSvc CatalogService, userSvc UserService) *gin.Engine {
	router := gin.New()

	authenticated := router.Group("/api/v1", middleware.NewAuthenticator(testSigningKey).VerifyJWT())
	{
		authenticated.GET("/themes", NewCatalogHandler(catalogSvc, userSvc).HandleListThemes)
		authenticated.POST("/themes", NewCatalogHandler(catalogSvc, userSvc).HandleCreateTheme)
		authenticated.POST("/shows", NewCatalogHandler(catalogSvc, userSvc).HandleCreateShow)

		reservations := NewReservationHandler(reservationSvc)
		authenticated.GET("/reservations", reservations.HandleListReservations)
		authenticated.POST("/reservations", reservations.HandleCreateReservation)
		authenticated.GET("/reservations/:reservationID", reservations.HandleGetReservation)
		authenticated.DELETE("/reservations/:reservationID", reservations.HandleDeleteReservation)
	}

	return router
}

func bearerToken(t *testing.T, userID uint, role string) string {
	t.Helper()

	token, err := jwthelper.GenerateToken([]byte(testSigningKey), userID, role, "go-test-agent")
	require.NoError(t, err)

	return "Bearer " + token
}

func doRequest(router *gin.Engine, method, target, auth, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	return resp
}

func defaultUsers() *stubUserService {
	return &stubUserService{
		users: map[uint]domain.User{
			1: {ID: 1, Email: "visitor@example.com", Role: domain.RoleUser},
			2: {ID: 2, Email: "admin@example.com", Role: domain.RoleStaff},
		},
	}
}
