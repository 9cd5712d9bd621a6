package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/propertyhub/marketplace-api/internal/api/middleware"
	"github.com/propertyhub/marketplace-api/internal/core/domain"
)

// principal extracts the authenticated principal injected by the Auth
// middleware. A missing subject means the middleware did not run or the
// token carried no identity; either way the request is unauthenticated.
func principal(c echo.Context) (domain.Principal, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return domain.Principal{}, domain.ErrUnauthenticated
	}
	role, _ := c.Get(middleware.CtxRole).(string)
	return domain.Principal{ID: id, Role: role}, nil
}
