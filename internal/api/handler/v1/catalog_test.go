package v1

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/service"
)

func TestCreateTheme_NonStaffForbidden(t *testing.T) {
	catalog := &stubCatalogService{}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	resp := doRequest(router, http.MethodPost, "/api/v1/themes", bearerToken(t, 1, domain.RoleUser), `{"name":"Aurora"}`)

	assert.Equal(t, http.StatusForbidden, resp.Code)
	assert.JSONEq(t, `{"error":"permission denied"}`, resp.Body.String())
	assert.Empty(t, catalog.themes)
}

func TestCreateTheme_Staff(t *testing.T) {
	catalog := &stubCatalogService{}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	resp := doRequest(router, http.MethodPost, "/api/v1/themes", bearerToken(t, 2, domain.RoleStaff), `{"name":"Aurora"}`)

	require.Equal(t, http.StatusCreated, resp.Code)

	var got struct {
		ID   uint   `json:"id"`
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &got))
	assert.Equal(t, "Aurora", got.Name)
	assert.NotZero(t, got.ID)
}

// The staff check reads the role from the database, so a token minted with a
// staff claim does not grant access on its own.
func TestCreateTheme_RoleComesFromDatabase(t *testing.T) {
	catalog := &stubCatalogService{}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	resp := doRequest(router, http.MethodPost, "/api/v1/themes", bearerToken(t, 1, domain.RoleStaff), `{"name":"Aurora"}`)

	assert.Equal(t, http.StatusForbidden, resp.Code)
}

func TestCreateTheme_Duplicate(t *testing.T) {
	catalog := &stubCatalogService{createErr: service.ErrThemeExists}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	resp := doRequest(router, http.MethodPost, "/api/v1/themes", bearerToken(t, 2, domain.RoleStaff), `{"name":"Aurora"}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "already exists")
}

func TestCreateTheme_EmptyName(t *testing.T) {
	catalog := &stubCatalogService{}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	resp := doRequest(router, http.MethodPost, "/api/v1/themes", bearerToken(t, 2, domain.RoleStaff), `{"name":""}`)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Empty(t, catalog.themes)
}

func TestListThemes_AnyAuthenticatedUser(t *testing.T) {
	catalog := &stubCatalogService{
		themes: []domain.ShowTheme{{ID: 1, Name: "Aurora"}},
	}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	resp := doRequest(router, http.MethodGet, "/api/v1/themes", bearerToken(t, 1, domain.RoleUser), "")

	require.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{"id":1,"name":"Aurora"}]`, resp.Body.String())
}

func TestCreateShow_UnknownThemeRejected(t *testing.T) {
	catalog := &stubCatalogService{createErr: service.ErrThemeNotFound}
	router := newTestRouter(&stubReservationService{}, catalog, defaultUsers())

	body := `{"title":"Northern Lights","description":"A tour.","theme_ids":[99]}`
	resp := doRequest(router, http.MethodPost, "/api/v1/shows", bearerToken(t, 2, domain.RoleStaff), body)

	assert.Equal(t, http.StatusBadRequest, resp.Code)
	assert.Contains(t, resp.Body.String(), "show theme not found")
}
