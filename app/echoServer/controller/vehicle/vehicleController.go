package vehicle

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	vehiclesvc "github.com/ZakariaZack98/PH-vehicle-rental/service/vehicle"
)

type Controller struct {
	Svc vehiclesvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// POST /api/v1/vehicles (admin)
func (ct *Controller) Create(c echo.Context) error {
	var req CreateVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required vehicle fields"})
	}

	v := &model.Vehicle{
		Name:               req.Name,
		Type:               model.VehicleType(req.Type),
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: model.AvailabilityStatus(req.AvailabilityStatus),
	}
	if err := ct.Svc.Create(c.Request().Context(), v); err != nil {
		switch vehiclesvc.Code(err) {
		case vehiclesvc.ErrRegistrationTaken:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Registration number already exists"})
		default:
			ct.Log.Error("vehicle create", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "Vehicle created successfully",
		"data":    v,
	})
}

// GET /api/v1/vehicles (public)
func (ct *Controller) List(c echo.Context) error {
	vehicles, err := ct.Svc.List(c.Request().Context())
	if err != nil {
		ct.Log.Error("vehicle list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Vehicles fetched successfully",
		"data":    vehicles,
	})
}

// GET /api/v1/vehicles/:id (public)
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}

	v, err := ct.Svc.Get(c.Request().Context(), id)
	if err != nil {
		switch vehiclesvc.Code(err) {
		case vehiclesvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Vehicle not found"})
		default:
			ct.Log.Error("vehicle detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Vehicle fetched successfully",
		"data":    v,
	})
}

// PUT /api/v1/vehicles/:id (admin)
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	var req UpdateVehicleReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "validation error"})
	}

	v, err := ct.Svc.Update(c.Request().Context(), id, req.fields())
	if err != nil {
		switch vehiclesvc.Code(err) {
		case vehiclesvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Vehicle not found"})
		case vehiclesvc.ErrRegistrationTaken:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Registration number already exists"})
		default:
			ct.Log.Error("vehicle update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Vehicle updated successfully",
		"data":    v,
	})
}

// DELETE /api/v1/vehicles/:id (admin)
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}

	if err := ct.Svc.Delete(c.Request().Context(), id); err != nil {
		switch vehiclesvc.Code(err) {
		case vehiclesvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "Vehicle not found"})
		case vehiclesvc.ErrActiveBooking:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Cannot delete vehicle with active bookings"})
		default:
			ct.Log.Error("vehicle delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Vehicle deleted successfully",
	})
}
