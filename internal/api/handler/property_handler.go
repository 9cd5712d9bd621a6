package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/propertyhub/marketplace-api/internal/core/ports"
)

// PropertyHandler handles the public and owner-facing listing endpoints.
type PropertyHandler struct {
	service ports.PropertyService
}

func NewPropertyHandler(service ports.PropertyService) *PropertyHandler {
	return &PropertyHandler{service: service}
}

// List handles GET /api/properties.
//
// @Summary      List properties with filters
// @Tags         properties
// @Produce      json
// @Param        type       query     string  false  "house or land"
// @Param        category   query     string  false  "buy or sell"
// @Param        city       query     string  false  "case-insensitive substring"
// @Param        state      query     string  false  "case-insensitive substring"
// @Param        status     query     string  false  "available, sold or pending"
// @Param        min_price  query     number  false  "inclusive lower price bound"
// @Param        max_price  query     number  false  "inclusive upper price bound"
// @Param        search     query     string  false  "free-text search"
// @Success      200        {array}   domain.Property
// @Failure      400        {object}  errorSchema
// @Router       /api/properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	results, err := h.service.Search(c.Request().Context(), toSearchCriteria(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}

// Get handles GET /api/properties/:id.
//
// @Summary      Get a single property
// @Tags         properties
// @Produce      json
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  domain.Property
// @Failure      404  {object}  errorSchema
// @Router       /api/properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	p, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// Create handles POST /api/properties.
//
// @Summary      Create a new property listing
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createPropertyRequest  true  "Listing details"
// @Success      201   {object}  domain.Property
// @Failure      400   {object}  errorSchema
// @Failure      401   {object}  errorSchema
// @Router       /api/properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req createPropertyRequest
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

	created, err := h.service.Create(c.Request().Context(), p, toCreateInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

// Update handles PUT /api/properties/:id.
//
// @Summary      Update a property (owner or admin)
// @Tags         properties
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Property id"
// @Param        body  body      updatePropertyRequest  true  "Partial patch"
// @Success      200   {object}  domain.Property
// @Failure      400   {object}  errorSchema
// @Failure      403   {object}  errorSchema
// @Failure      404   {object}  errorSchema
// @Router       /api/properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	var req updatePropertyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	p, err := principal(c)
	if err != nil {
		return err
	}

	updated, err := h.service.Update(c.Request().Context(), p, c.Param("id"), toPatch(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /api/properties/:id.
//
// @Summary      Delete a property (owner or admin)
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Property id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorSchema
// @Failure      404  {object}  errorSchema
// @Router       /api/properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), p, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "property deleted successfully"})
}

// MyProperties handles GET /api/properties/user/my-properties.
//
// @Summary      List the caller's own properties
// @Tags         properties
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Property
// @Failure      401  {object}  errorSchema
// @Router       /api/properties/user/my-properties [get]
func (h *PropertyHandler) MyProperties(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	results, err := h.service.ListOwn(c.Request().Context(), p)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, results)
}
