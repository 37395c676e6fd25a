package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/camp-api/internal/core/domain"
	"github.com/summercamp/camp-api/internal/core/ports"
)

// UserHandler serves registration, role checks and promotion.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// List returns every user record.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Register stores a user the first time its email is seen. Unknown fields
// are kept as profile data; role and _id are never taken from the client.
//
// @Summary      Register a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User profile"
// @Success      200   {object}  domain.InsertResult
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Register(c echo.Context) error {
	var body map[string]any
	if err := c.Bind(&body); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	req := registerRequest{
		Email: strings.TrimSpace(stringField(body, "email")),
		Name:  stringField(body, "name"),
		Photo: stringField(body, "photo"),
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.users.Register(c.Request().Context(), ports.RegisterInput{
		Email:   req.Email,
		Name:    req.Name,
		Photo:   req.Photo,
		Profile: body,
	})
	if err != nil {
		return err
	}
	if res.AlreadyExists {
		return c.JSON(http.StatusOK, messageResponse{Message: "user already exists"})
	}
	return c.JSON(http.StatusOK, res.Insert)
}

// IsAdmin reports whether the caller's own record is an admin.
//
// @Summary      Check admin role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  adminStatusResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/admin/{email} [get]
func (h *UserHandler) IsAdmin(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	ok, err := h.users.HasRole(c.Request().Context(), email, domain.RoleAdmin)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, adminStatusResponse{Admin: ok})
}

// IsInstructor reports whether the caller's own record is an instructor.
//
// @Summary      Check instructor role
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        email  path      string  true  "Caller email"
// @Success      200    {object}  instructorStatusResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /users/instructor/{email} [get]
func (h *UserHandler) IsInstructor(c echo.Context) error {
	email, err := emailParam(c)
	if err != nil {
		return err
	}
	ok, err := h.users.HasRole(c.Request().Context(), email, domain.RoleInstructor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructorStatusResponse{Instructor: ok})
}

// Promote returns a handler that sets the role of the user in the :id path
// parameter.
//
// @Summary      Promote a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  domain.UpdateResult
// @Failure      400  {object}  errorResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /users/admin/{id} [patch]
// @Router       /users/instructor/{id} [patch]
func (h *UserHandler) Promote(role domain.Role) echo.HandlerFunc {
	return func(c echo.Context) error {
		res, err := h.users.Promote(c.Request().Context(), c.Param("id"), role)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, res)
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
