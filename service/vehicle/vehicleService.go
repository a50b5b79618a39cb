package vehiclesvc

import (
	"context"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	vehiclerepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/vehicle"
)

type ErrCode string

const (
	ErrNotFound          ErrCode = "NOT_FOUND"
	ErrRegistrationTaken ErrCode = "REGISTRATION_TAKEN"
	ErrActiveBooking     ErrCode = "ACTIVE_BOOKING"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// BookingGuard answers whether a vehicle is still referenced by an ACTIVE
// booking.
type BookingGuard interface {
	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)
}

// Update fields left nil keep their current value.
type UpdateFields struct {
	Name               *string
	Type               *model.VehicleType
	RegistrationNumber *string
	DailyRentPrice     *float64
	AvailabilityStatus *model.AvailabilityStatus
}

type Service interface {
	Create(ctx context.Context, v *model.Vehicle) error
	List(ctx context.Context) ([]model.Vehicle, error)
	Get(ctx context.Context, id int64) (*model.Vehicle, error)
	Update(ctx context.Context, id int64, f UpdateFields) (*model.Vehicle, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	vr vehiclerepo.Repo
	bg BookingGuard
}

func New(vr vehiclerepo.Repo, bg BookingGuard) Service { return &service{vr: vr, bg: bg} }

func (s *service) Create(ctx context.Context, v *model.Vehicle) error {
	if v.AvailabilityStatus == "" {
		v.AvailabilityStatus = model.VehicleAvailable
	}
	if err := s.vr.Create(ctx, v); err != nil {
		if isUniqueViolation(err) {
			return makeErr(ErrRegistrationTaken)
		}
		return err
	}
	return nil
}

func (s *service) List(ctx context.Context) ([]model.Vehicle, error) {
	return s.vr.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Vehicle, error) {
	v, err := s.vr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return v, nil
}

func (s *service) Update(ctx context.Context, id int64, f UpdateFields) (*model.Vehicle, error) {
	v, err := s.vr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}

	if f.Name != nil {
		v.Name = *f.Name
	}
	if f.Type != nil {
		v.Type = *f.Type
	}
	if f.RegistrationNumber != nil {
		v.RegistrationNumber = *f.RegistrationNumber
	}
	if f.DailyRentPrice != nil {
		v.DailyRentPrice = *f.DailyRentPrice
	}
	if f.AvailabilityStatus != nil {
		v.AvailabilityStatus = *f.AvailabilityStatus
	}

	if err := s.vr.Update(ctx, v); err != nil {
		if isUniqueViolation(err) {
			return nil, makeErr(ErrRegistrationTaken)
		}
		return nil, err
	}
	return v, nil
}

func (s *service) Delete(ctx context.Context, id int64) error {
	v, err := s.vr.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return makeErr(ErrNotFound)
		}
		return err
	}
	if v.AvailabilityStatus == model.VehicleBooked {
		return makeErr(ErrActiveBooking)
	}
	active, err := s.bg.HasActiveByVehicle(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return makeErr(ErrActiveBooking)
	}
	deleted, err := s.vr.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
