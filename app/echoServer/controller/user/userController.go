package user

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	usersvc "github.com/ZakariaZack98/PH-vehicle-rental/service/user"
)

type Controller struct {
	Svc usersvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

type UpdateUserReq struct {
	Name  string `json:"name" validate:"omitempty,min=1"`
	Phone string `json:"phone" validate:"omitempty,min=1"`
}

func acting(c echo.Context) (int64, model.Role) {
	uid, _ := c.Get("user_id").(int64)
	role, _ := c.Get("role").(model.Role)
	return uid, role
}

// GET /api/v1/users (admin)
func (ct *Controller) List(c echo.Context) error {
	uid, role := acting(c)
	users, err := ct.Svc.List(c.Request().Context(), uid, role)
	if err != nil {
		ct.Log.Error("user list", "err", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Users fetched successfully",
		"data":    users,
	})
}

// GET /api/v1/users/:id (self or admin)
func (ct *Controller) Detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	uid, role := acting(c)

	u, err := ct.Svc.Get(c.Request().Context(), id, uid, role)
	if err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You are not authorized to perform this action"})
		case usersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		default:
			ct.Log.Error("user detail", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User fetched successfully",
		"data":    u,
	})
}

// PUT /api/v1/users/:id (self or admin)
func (ct *Controller) Update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}
	var req UpdateUserReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "validation error"})
	}
	uid, role := acting(c)

	u, err := ct.Svc.Update(c.Request().Context(), id, req.Name, req.Phone, uid, role)
	if err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"success": false, "message": "You are not authorized to perform this action"})
		case usersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		default:
			ct.Log.Error("user update", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User updated successfully",
		"data":    u,
	})
}

// DELETE /api/v1/users/:id (admin)
func (ct *Controller) Delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid id"})
	}

	if err := ct.Svc.Delete(c.Request().Context(), id); err != nil {
		switch usersvc.Code(err) {
		case usersvc.ErrActiveBooking:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Cannot delete user with active bookings"})
		case usersvc.ErrNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "message": "User not found"})
		default:
			ct.Log.Error("user delete", "err", err)
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "User deleted successfully",
	})
}
