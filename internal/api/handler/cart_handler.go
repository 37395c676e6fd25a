package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/camp-api/internal/core/ports"
)

type CartHandler struct {
	carts ports.CartService
}

func NewCartHandler(carts ports.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

// List returns the cart of the email in the query string. The route is
// owner-scoped, so that email is always the caller's.
//
// @Summary      List cart items
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Param        email  query     string  true  "Owner email"
// @Success      200    {array}   domain.CartItem
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /carts [get]
func (h *CartHandler) List(c echo.Context) error {
	items, err := h.carts.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, items)
}

// Add stores a cart item.
//
// @Summary      Add a cart item
// @Tags         carts
// @Accept       json
// @Produce      json
// @Param        body  body      addCartItemRequest  true  "Cart item"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /carts [post]
func (h *CartHandler) Add(c echo.Context) error {
	var req addCartItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.carts.Add(c.Request().Context(), req.toDomain())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Remove deletes one of the caller's cart items. Items owned by someone else
// are left alone and reported as zero deletions.
//
// @Summary      Remove a cart item
// @Tags         carts
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Cart item id"
// @Success      200  {object}  domain.DeleteResult
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Router       /carts/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	res, err := h.carts.Remove(c.Request().Context(), c.Param("id"), caller.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}
