package auth

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	authsvc "github.com/ZakariaZack98/PH-vehicle-rental/service/auth"
)

type Controller struct {
	Svc authsvc.Service
	V   *validator.Validate
	Log *slog.Logger
}

// Signup registers a new account
// @Summary      Signup
// @Description  Register a new user; role defaults to customer
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SignupReq  true  "Signup payload"
// @Success      201  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      409  {object}  map[string]any "email already registered"
// @Router       /api/v1/auth/signup [post]
func (ct *Controller) Signup(c echo.Context) error {
	var req model.SignupReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("signup validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields"})
	}

	u, err := ct.Svc.Signup(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrEmailTaken:
			return c.JSON(http.StatusConflict, echo.Map{"success": false, "message": "Email already registered"})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields"})
		default:
			ct.Log.Error("signup failed", "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"success": true,
		"message": "User registered successfully",
		"data":    u,
	})
}

// Signin authenticates and returns a JWT
// @Summary      Signin
// @Description  Login with email + password, returns token and user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        payload  body  model.SigninReq  true  "Signin payload"
// @Success      200  {object}  map[string]any
// @Failure      400  {object}  map[string]any
// @Failure      401  {object}  map[string]any
// @Router       /api/v1/auth/signin [post]
func (ct *Controller) Signin(c echo.Context) error {
	var req model.SigninReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "invalid JSON"})
	}
	if err := ct.V.Struct(req); err != nil {
		ct.Log.Warn("signin validation failed", "path", c.Path(), "err", err)
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields"})
	}

	u, token, err := ct.Svc.Signin(c.Request().Context(), req)
	if err != nil {
		switch authsvc.Code(err) {
		case authsvc.ErrInvalidCreds:
			return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "Invalid credentials"})
		case authsvc.ErrBadInput:
			return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "message": "Missing required fields"})
		default:
			ct.Log.Error("signin failed", "err", err, "req_id", c.Response().Header().Get(echo.HeaderXRequestID))
			return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "message": "internal error"})
		}
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Signed in successfully",
		"data": echo.Map{
			"token": token,
			"user":  u,
		},
	})
}
