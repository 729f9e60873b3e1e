package v1

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/astroreserve/planetarium-api/internal/api/handler/v1/response"
	"github.com/astroreserve/planetarium-api/internal/api/middleware"
	"github.com/astroreserve/planetarium-api/internal/domain"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
}

func getUserIDFromContext(ctx *gin.Context) (uint, *response.Err) {
	value, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return 0, response.ErrUnauthorized(errors.New("user id not found in context"))
	}

	userID, ok := value.(uint)
	if !ok {
		return 0, response.ErrUnauthorized(fmt.Errorf("unexpected user id type %T", value))
	}

	return userID, nil
}

func getUserFromContext(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	userID, respErr := getUserIDFromContext(ctx)
	if respErr != nil {
		return domain.User{}, respErr
	}

	user, err := svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrUnauthorized(err)
	}

	return user, nil
}

// requireStaff resolves the caller and rejects non-staff roles. The role is
// read from the database, not the token, so a demotion takes effect
// immediately.
func requireStaff(ctx *gin.Context, svc UserService) (domain.User, *response.Err) {
	user, respErr := getUserFromContext(ctx, svc)
	if respErr != nil {
		return domain.User{}, respErr
	}

	if !user.IsStaff() {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("user %v is not staff", user.ID))
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}

// parseIDList splits a comma-separated id list query parameter, e.g.
// ?show=1,2,3.
func parseIDList(value string) ([]uint, error) {
	if value == "" {
		return nil, nil
	}

	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		ids = append(ids, uint(id))
	}

	return ids, nil
}
