package echoServer

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/auth"
	"github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/booking"
	"github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/user"
	"github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/vehicle"
	"github.com/ZakariaZack98/PH-vehicle-rental/model"
)

type C struct {
	Auth      *auth.Controller
	User      *user.Controller
	Vehicle   *vehicle.Controller
	Booking   *booking.Controller
	JWTSecret string
}

func Register(e *echo.Echo, c C) {
	// Public
	pub := e.Group("/api/v1")
	pub.POST("/auth/signup", c.Auth.Signup)
	pub.POST("/auth/signin", c.Auth.Signin)
	pub.GET("/vehicles", c.Vehicle.List)
	pub.GET("/vehicles/:id", c.Vehicle.Detail)

	// Auth
	authed := e.Group("/api/v1")
	authed.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(c.JWTSecret),

		NewClaimsFunc: func(c echo.Context) jwt.Claims { return jwt.MapClaims{} },
		TokenLookup:   "header:Authorization",
	}))
	// user_id + role extraction
	authed.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			tok, ok := ctx.Get("user").(*jwt.Token)
			if !ok || tok == nil {
				return unauthorized(ctx)
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(ctx)
			}
			sub, ok := claims["sub"].(float64)
			if !ok {
				return unauthorized(ctx)
			}
			roleStr, ok := claims["role"].(string)
			if !ok {
				return unauthorized(ctx)
			}
			ctx.Set("user_id", int64(sub))
			ctx.Set("role", model.Role(roleStr))
			return next(ctx)
		}
	})

	admin := RequireRole(model.RoleAdmin)

	// Users
	authed.GET("/users", c.User.List, admin)
	authed.GET("/users/:id", c.User.Detail)
	authed.PUT("/users/:id", c.User.Update)
	authed.DELETE("/users/:id", c.User.Delete, admin)

	// Vehicles (admin writes; reads are public above)
	authed.POST("/vehicles", c.Vehicle.Create, admin)
	authed.PUT("/vehicles/:id", c.Vehicle.Update, admin)
	authed.DELETE("/vehicles/:id", c.Vehicle.Delete, admin)

	// Bookings
	authed.POST("/bookings", c.Booking.Create)
	authed.GET("/bookings", c.Booking.List)
	authed.PUT("/bookings/:id", c.Booking.UpdateStatus)
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"success": false,
		"message": "Missing or invalid authentication token",
	})
}
