package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/request"
	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/response"
	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/service"
)

type CatalogService interface {
	CreateTheme(ctx context.Context, theme domain.ShowTheme) (domain.ShowTheme, error)
	ListThemes(ctx context.Context) ([]domain.ShowTheme, error)
	CreateShow(ctx context.Context, show domain.AstronomyShow, themeIDs []uint) (domain.AstronomyShow, error)
	GetShow(ctx context.Context, id uint) (domain.AstronomyShow, error)
	ListShows(ctx context.Context) ([]domain.AstronomyShow, error)
	UpdateShow(ctx context.Context, show domain.AstronomyShow, themeIDs []uint) (domain.AstronomyShow, error)
	DeleteShow(ctx context.Context, id uint) error
	CreateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error)
	GetDome(ctx context.Context, id uint) (domain.PlanetariumDome, []domain.ShowSession, error)
	ListDomes(ctx context.Context) ([]domain.PlanetariumDome, error)
	UpdateDome(ctx context.Context, dome domain.PlanetariumDome) (domain.PlanetariumDome, error)
	DeleteDome(ctx context.Context, id uint) error
	CreateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error)
	GetSession(ctx context.Context, id uint) (domain.ShowSession, error)
	ListSessions(ctx context.Context, showIDs, domeIDs []uint) ([]domain.ShowSession, error)
	UpdateSession(ctx context.Context, session domain.ShowSession) (domain.ShowSession, error)
	DeleteSession(ctx context.Context, id uint) error
}

type CatalogHandler struct {
	svc  CatalogService
	uSvc UserService
}

func NewCatalogHandler(svc CatalogService, uSvc UserService) *CatalogHandler {
	return &CatalogHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListThemes godoc
// @Summary      List show themes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   response.ThemeView
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /themes [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListThemes(ctx *gin.Context) {
	themes, err := h.svc.ListThemes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListThemes -> h.svc.ListThemes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewThemeViews(themes))
}

// HandleCreateTheme godoc
// @Summary      Create a show theme
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateThemeRequest true "request body"
// @Success      201      {object}  response.ThemeView
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /themes [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateTheme(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	theme, err := h.svc.CreateTheme(ctx.Request.Context(), domain.ShowTheme{Name: req.Name})
	if err != nil {
		if errors.Is(err, service.ErrThemeExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrThemeExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateTheme -> h.svc.CreateTheme -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewThemeView(theme))
}

// HandleListShows godoc
// @Summary      List astronomy shows
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   response.ShowList
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /shows [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListShows(ctx *gin.Context) {
	shows, err := h.svc.ListShows(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListShows -> h.svc.ListShows -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewShowLists(shows))
}

// HandleGetShow godoc
// @Summary      Get one astronomy show
// @Tags         catalog
// @Produce      json
// @Param        showID  path      int  true  "show ID"
// @Success      200     {object}  response.ShowDetail
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /shows/{showID} [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetShow(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "showID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	show, err := h.svc.GetShow(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("astronomy show", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetShow -> h.svc.GetShow -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewShowDetail(show))
}

// HandleCreateShow godoc
// @Summary      Create an astronomy show
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateShowRequest true "request body"
// @Success      201      {object}  response.ShowDetail
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /shows [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateShow(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	show, err := h.svc.CreateShow(ctx.Request.Context(), domain.AstronomyShow{
		Title:       req.Title,
		Description: req.Description,
	}, req.ThemeIDs)
	if err != nil {
		if errors.Is(err, service.ErrThemeNotFound) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrThemeNotFound))

			return
		}

		err = fmt.Errorf("v1.HandleCreateShow -> h.svc.CreateShow -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewShowDetail(show))
}

// HandleUpdateShow godoc
// @Summary      Update an astronomy show
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        showID   path      int  true  "show ID"
// @Param        request  body      request.UpdateShowRequest true "request body"
// @Success      200      {object}  response.ShowDetail
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /shows/{showID} [put]
// @Security BearerAuth
func (h *CatalogHandler) HandleUpdateShow(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "showID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	show, err := h.svc.UpdateShow(ctx.Request.Context(), domain.AstronomyShow{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
	}, req.ThemeIDs)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShowNotFound):
			response.RenderErr(ctx, response.ErrNotFound("astronomy show", "id", id))
		case errors.Is(err, service.ErrThemeNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrThemeNotFound))
		default:
			err = fmt.Errorf("v1.HandleUpdateShow -> h.svc.UpdateShow -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewShowDetail(show))
}

// HandleDeleteShow godoc
// @Summary      Delete an astronomy show
// @Tags         catalog
// @Param        showID  path  int  true  "show ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /shows/{showID} [delete]
// @Security BearerAuth
func (h *CatalogHandler) HandleDeleteShow(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "showID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteShow(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrShowNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("astronomy show", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteShow -> h.svc.DeleteShow -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListDomes godoc
// @Summary      List planetarium domes
// @Tags         catalog
// @Produce      json
// @Success      200  {array}   response.DomeView
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /domes [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleListDomes(ctx *gin.Context) {
	domes, err := h.svc.ListDomes(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListDomes -> h.svc.ListDomes -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewDomeViews(domes))
}

// HandleGetDome godoc
// @Summary      Get one planetarium dome with its sessions
// @Tags         catalog
// @Produce      json
// @Param        domeID  path      int  true  "dome ID"
// @Success      200     {object}  response.DomeDetail
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /domes/{domeID} [get]
// @Security BearerAuth
func (h *CatalogHandler) HandleGetDome(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "domeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	dome, sessions, err := h.svc.GetDome(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrDomeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("planetarium dome", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetDome -> h.svc.GetDome -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewDomeDetail(dome, sessions))
}

// HandleCreateDome godoc
// @Summary      Create a planetarium dome
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateDomeRequest true "request body"
// @Success      201      {object}  response.DomeView
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /domes [post]
// @Security BearerAuth
func (h *CatalogHandler) HandleCreateDome(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateDomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	dome, err := h.svc.CreateDome(ctx.Request.Context(), domain.PlanetariumDome{
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		if errors.Is(err, service.ErrDomeExists) {
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDomeExists))

			return
		}

		err = fmt.Errorf("v1.HandleCreateDome -> h.svc.CreateDome -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewDomeView(dome))
}

// HandleUpdateDome godoc
// @Summary      Update a planetarium dome
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        domeID   path      int  true  "dome ID"
// @Param        request  body      request.UpdateDomeRequest true "request body"
// @Success      200      {object}  response.DomeView
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /domes/{domeID} [put]
// @Security BearerAuth
func (h *CatalogHandler) HandleUpdateDome(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "domeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateDomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	dome, err := h.svc.UpdateDome(ctx.Request.Context(), domain.PlanetariumDome{
		ID:         id,
		Name:       req.Name,
		Rows:       req.Rows,
		SeatsInRow: req.SeatsInRow,
		ImageURL:   req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDomeNotFound):
			response.RenderErr(ctx, response.ErrNotFound("planetarium dome", "id", id))
		case errors.Is(err, service.ErrDomeExists):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDomeExists))
		default:
			err = fmt.Errorf("v1.HandleUpdateDome -> h.svc.UpdateDome -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewDomeView(dome))
}

// HandleDeleteDome godoc
// @Summary      Delete a planetarium dome
// @Tags         catalog
// @Param        domeID  path  int  true  "dome ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /domes/{domeID} [delete]
// @Security BearerAuth
func (h *CatalogHandler) HandleDeleteDome(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "domeID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteDome(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrDomeNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("planetarium dome", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteDome -> h.svc.DeleteDome -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
