package booking

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	bookingsvc "github.com/ZakariaZack98/PH-vehicle-rental/service/booking"
)

type Controller struct {
	Svc bookingsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

func acting(c echo.Context) (int64, model.Role) {
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(model.Role)
	return uid, role
}

// Create a booking
// @Summary      Create booking
// @Description  Book a vehicle for a date range; price is fixed at creation
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        payload  body  CreateBookingReq  true  "Booking payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any "invalid date range"
// @Failure      404  {object}  map[string]any "vehicle not found"
// @Failure      409  {object}  map[string]any "vehicle unavailable or date conflict"
// @Security     BearerAuth
// @Router       /api/v1/bookings [post]
func (ct *Controller) Create(c echo.Context) error {
	var req CreateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields"})
	}
	start, err := parseDate(req.RentStartDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid rental date range"})
	}
	end, err := parseDate(req.RentEndDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid rental date range"})
	}
	uid, _ := acting(c)

	b, err := ct.Svc.Create(c.Request().Context(), uid, req.VehicleID, start, end)
	if err != nil {
		switch bookingsvc.Code(err) {
		case bookingsvc.ErrInvalidDateRange:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid rental date range"})
		case bookingsvc.ErrVehicleNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Vehicle not found"})
		case bookingsvc.ErrVehicleUnavailable:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Vehicle is already booked"})
		case bookingsvc.ErrDateConflict:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Vehicle already booked for selected dates"})
		default:
			ct.Log.Error("booking create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Booking created successfully",
		"data":    b,
	})
}

// GET /api/v1/bookings — own bookings, all for admin
func (ct *Controller) List(c echo.Context) error {
	uid, role := acting(c)
	rows, err := ct.Svc.List(c.Request().Context(), uid, role)
	if err != nil {
		ct.Log.Error("booking list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Bookings fetched successfully",
		"data":    rows,
	})
}

// PUT /api/v1/bookings/:id {status: "returned"|"cancelled"}
func (ct *Controller) UpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	var req UpdateBookingReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Invalid status update"})
	}
	uid, role := acting(c)

	var (
		b   *model.Booking
		msg string
	)
	switch req.Status {
	case "returned":
		// force-return is an admin privilege; the sweeper calls the
		// service directly
		if role != model.RoleAdmin {
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You are not authorized to perform this action"})
		}
		b, err = ct.Svc.Return(c.Request().Context(), id)
		msg = "Vehicle returned successfully"
	case "cancelled":
		b, err = ct.Svc.Cancel(c.Request().Context(), id, uid, role)
		msg = "Booking cancelled successfully"
	}

	if err != nil {
		switch bookingsvc.Code(err) {
		case bookingsvc.ErrBookingNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Booking not found"})
		case bookingsvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You are not authorized to perform this action"})
		case bookingsvc.ErrNotActive:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Booking is not active"})
		default:
			ct.Log.Error("booking status update", "err", err, "booking_id", id)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": msg,
		"data":    b,
	})
}
