package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

// AdminHandler handles the administrator-only moderation endpoints. The
// routes are mounted behind Auth + RBAC(admin); the service re-checks the
// principal before touching any state.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Stats handles GET /api/admin/stats.
//
// @Summary      Dashboard statistics
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ports.DashboardStats
// @Failure      403  {object}  errorSchema
// @Router       /api/admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	stats, err := h.service.ComputeStats(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stats)
}

// ListProperties handles GET /api/admin/properties.
//
// @Summary      List all properties (admin view)
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Property
// @Failure      403  {object}  errorSchema
// @Router       /api/admin/properties [get]
func (h *AdminHandler) ListProperties(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	results, err := h.service.ListAllProperties(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// ListUsers handles GET /api/admin/users.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  errorSchema
// @Router       /api/admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	users, err := h.service.ListUsers(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// SetStatus handles PUT /api/admin/properties/:id/status.
//
// @Summary      Update property status
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Property id"
// @Param        body  body      setStatusRequest  true  "New status"
// @Success      200   {object}  domain.Property
// @Failure      400   {object}  errorSchema
// @Failure      403   {object}  errorSchema
// @Failure      404   {object}  errorSchema
// @Router       /api/admin/properties/{id}/status [put]
func (h *AdminHandler) SetStatus(c echo.Context) error {
	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	p, err := principal(c)
	if err != nil {
		return err
	}

	updated, err := h.service.SetStatus(c.Request().Context(), p, c.Param("id"), req.Status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// ToggleFeatured handles PUT /api/admin/properties/:id/featured.
//
// @Summary      Toggle the featured flag
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  domain.Property
// @Failure      403  {object}  errorSchema
// @Failure      404  {object}  errorSchema
// @Router       /api/admin/properties/{id}/featured [put]
func (h *AdminHandler) ToggleFeatured(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	updated, err := h.service.ToggleFeatured(c.Request().Context(), p, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteProperty handles DELETE /api/admin/properties/:id.
//
// @Summary      Delete any property
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorSchema
// @Failure      404  {object}  errorSchema
// @Router       /api/admin/properties/{id} [delete]
func (h *AdminHandler) DeleteProperty(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteProperty(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "property deleted successfully"})
}

// DeleteUser handles DELETE /api/admin/users/:id.
//
// @Summary      Delete a user account
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorSchema
// @Failure      404  {object}  errorSchema
// @Router       /api/admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteUser(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted successfully"})
}
