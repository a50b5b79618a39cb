// Package main vehicle rental API.
//
// @title           Vehicle Rental API
// @version         1.0
// @description     Vehicle rental backend (auth, users, vehicles, bookings).
// @BasePath        /
// @schemes         http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description  Use:  Bearer <JWT>
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer"
	authctrl "github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/auth"
	bookingctrl "github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/booking"
	userctrl "github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/user"
	vehiclectrl "github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/controller/vehicle"
	"github.com/ZakariaZack98/PH-vehicle-rental/app/echoServer/validation"
	"github.com/ZakariaZack98/PH-vehicle-rental/config"
	bookingrepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/booking"
	userrepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/user"
	vehiclerepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/vehicle"
	authsvc "github.com/ZakariaZack98/PH-vehicle-rental/service/auth"
	bookingsvc "github.com/ZakariaZack98/PH-vehicle-rental/service/booking"
	usersvc "github.com/ZakariaZack98/PH-vehicle-rental/service/user"
	vehiclesvc "github.com/ZakariaZack98/PH-vehicle-rental/service/vehicle"
	"github.com/ZakariaZack98/PH-vehicle-rental/util/database"
)

func main() {

	// logger
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Error("config load failed", "err", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB: pgx pool
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	// repos
	ur := userrepo.New(db)
	vr := vehiclerepo.New(db)
	br := bookingrepo.New(db)

	// services
	as := authsvc.New(ur, cfg.JWTSecret, cfg.JWTTTLHours)
	us := usersvc.New(ur, br)
	vs := vehiclesvc.New(vr, br)
	bs := bookingsvc.New(db.Pool, br)

	// controllers
	v := validator.New()
	authC := &authctrl.Controller{Svc: as, V: v, Log: log}
	userC := &userctrl.Controller{Svc: us, V: v, Log: log}
	vehicleC := &vehiclectrl.Controller{Svc: vs, V: v, Log: log}
	bookingC := &bookingctrl.Controller{Svc: bs, V: v, Log: log}

	// echo
	e := echo.New()
	e.HideBanner = true
	echoServer.RegisterMiddlewares(e)
	e.Validator = validation.New()

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]any{
			"status":  "ok",
			"message": "Service is healthy and connected",
		})
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	echoServer.Register(e, echoServer.C{
		Auth:    authC,
		User:    userC,
		Vehicle: vehicleC,
		Booking: bookingC,

		JWTSecret: cfg.JWTSecret,
	})

	// overdue bookings sweeper
	sweeper := bookingsvc.NewSweeper(br, bs, log, cfg.SweepInterval)
	go sweeper.Run(ctx)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Port
	}

	go func() {
		log.Info("starting server", "port", port, "sweep_interval", cfg.SweepInterval.String())
		if err := e.Start(":" + port); err != nil && err != http.ErrServerClosed {
			log.Error("server stopped", "err", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown failed", "err", err)
	}
	log.Info("server stopped")
}
