package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/summercamp/camp-api/internal/core/ports"
)

// ClassHandler serves the class catalogue and the instructor listing.
type ClassHandler struct {
	classes ports.ClassService
}

func NewClassHandler(classes ports.ClassService) *ClassHandler {
	return &ClassHandler{classes: classes}
}

// List returns all classes, or only those of one instructor when ?email= is set.
//
// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Param        email  query     string  false  "Instructor email"
// @Success      200    {array}   domain.Class
// @Router       /classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.classes.ListClasses(c.Request().Context(), ports.ClassFilter{
		InstructorEmail: c.QueryParam("email"),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, classes)
}

// Create adds a class owned by the calling instructor.
//
// @Summary      Create a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClassRequest  true  "Class details"
// @Success      200   {object}  domain.InsertResult
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}

	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.classes.CreateClass(c.Request().Context(), ports.CreateClassInput{
		Name:            req.Name,
		Image:           req.Image,
		InstructorName:  req.InstructorName,
		InstructorEmail: caller.Email,
		AvailableSeats:  req.AvailableSeats,
		Price:           req.Price,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// Instructors lists the instructor directory.
//
// @Summary      List instructors
// @Tags         classes
// @Produce      json
// @Success      200  {array}  domain.Instructor
// @Router       /instructor [get]
func (h *ClassHandler) Instructors(c echo.Context) error {
	instructors, err := h.classes.ListInstructors(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, instructors)
}
