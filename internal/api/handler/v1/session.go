package v1

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/request"
	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/response"
	"github.com/astroreserve/planetarium-api/internal/domain"
	"github.com/astroreserve/planetarium-api/internal/service"
)

type SessionHandler struct {
	svc  CatalogService
	uSvc UserService
}

func NewSessionHandler(svc CatalogService, uSvc UserService) *SessionHandler {
	return &SessionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleListSessions godoc
// @Summary      List show sessions
// @Description  Optionally filter by comma-separated show and dome id lists,
// @Description  e.g. ?show=1,2&dome=3.
// @Tags         sessions
// @Produce      json
// @Param        show  query     string  false  "comma-separated astronomy show ids"
// @Param        dome  query     string  false  "comma-separated planetarium dome ids"
// @Success      200   {array}   response.SessionList
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /sessions [get]
// @Security BearerAuth
func (h *SessionHandler) HandleListSessions(ctx *gin.Context) {
	showIDs, err := parseIDList(ctx.Query("show"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	domeIDs, err := parseIDList(ctx.Query("dome"))
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	sessions, err := h.svc.ListSessions(ctx.Request.Context(), showIDs, domeIDs)
	if err != nil {
		err = fmt.Errorf("v1.HandleListSessions -> h.svc.ListSessions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewSessionLists(sessions))
}

// HandleGetSession godoc
// @Summary      Get one show session
// @Tags         sessions
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Success      200        {object}  response.SessionDetail
// @Failure      401        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [get]
// @Security BearerAuth
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.GetSession(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show session", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleGetSession -> h.svc.GetSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewSessionDetail(session))
}

// HandleCreateSession godoc
// @Summary      Create a show session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateSessionRequest true "request body"
// @Success      201      {object}  response.SessionDetail
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /sessions [post]
// @Security BearerAuth
func (h *SessionHandler) HandleCreateSession(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	var req request.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	showTime, err := time.Parse(time.RFC3339, req.ShowTime)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.CreateSession(ctx.Request.Context(), domain.ShowSession{
		AstronomyShowID:   req.AstronomyShowID,
		PlanetariumDomeID: req.PlanetariumDomeID,
		ShowTime:          showTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrShowNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrShowNotFound))
		case errors.Is(err, service.ErrDomeNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDomeNotFound))
		default:
			err = fmt.Errorf("v1.HandleCreateSession -> h.svc.CreateSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, response.NewSessionDetail(session))
}

// HandleUpdateSession godoc
// @Summary      Update a show session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        sessionID  path      int  true  "session ID"
// @Param        request    body      request.UpdateSessionRequest true "request body"
// @Success      200        {object}  response.SessionDetail
// @Failure      400        {object}  response.Err
// @Failure      401        {object}  response.Err
// @Failure      403        {object}  response.Err
// @Failure      404        {object}  response.Err
// @Failure      500        {object}  response.Err
// @Router       /sessions/{sessionID} [put]
// @Security BearerAuth
func (h *SessionHandler) HandleUpdateSession(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	showTime, err := time.Parse(time.RFC3339, req.ShowTime)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	session, err := h.svc.UpdateSession(ctx.Request.Context(), domain.ShowSession{
		ID:                id,
		AstronomyShowID:   req.AstronomyShowID,
		PlanetariumDomeID: req.PlanetariumDomeID,
		ShowTime:          showTime,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			response.RenderErr(ctx, response.ErrNotFound("show session", "id", id))
		case errors.Is(err, service.ErrShowNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrShowNotFound))
		case errors.Is(err, service.ErrDomeNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(service.ErrDomeNotFound))
		default:
			err = fmt.Errorf("v1.HandleUpdateSession -> h.svc.UpdateSession -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusOK, response.NewSessionDetail(session))
}

// HandleDeleteSession godoc
// @Summary      Delete a show session
// @Tags         sessions
// @Param        sessionID  path  int  true  "session ID"
// @Success      204
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /sessions/{sessionID} [delete]
// @Security BearerAuth
func (h *SessionHandler) HandleDeleteSession(ctx *gin.Context) {
	if _, respErr := requireStaff(ctx, h.uSvc); respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	id, err := parseIDParam(ctx, "sessionID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteSession(ctx.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("show session", "id", id))

			return
		}

		err = fmt.Errorf("v1.HandleDeleteSession -> h.svc.DeleteSession -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.Status(http.StatusNoContent)
}
