package bookingsvc

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	bookingrepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/booking"
)

// errors used by controllers

type ErrCode string

const (
	ErrInvalidDateRange   ErrCode = "INVALID_DATE_RANGE"
	ErrVehicleNotFound    ErrCode = "VEHICLE_NOT_FOUND"
	ErrVehicleUnavailable ErrCode = "VEHICLE_UNAVAILABLE"
	ErrDateConflict       ErrCode = "DATE_CONFLICT"
	ErrBookingNotFound    ErrCode = "BOOKING_NOT_FOUND"
	ErrNotActive          ErrCode = "NOT_ACTIVE"
	ErrForbidden          ErrCode = "FORBIDDEN"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Row = repository shape
type Row = bookingrepo.Row

// TxBeginner opens transactions; *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

type Service interface {
	// Create books a vehicle for [start, end], prices it at the vehicle's
	// current daily rate and marks the vehicle BOOKED, all in one transaction.
	Create(ctx context.Context, customerID, vehicleID int64, start, end time.Time) (*model.Booking, error)

	// Return transitions ACTIVE -> RETURNED and frees the vehicle. Calling
	// it on an already-RETURNED booking is a no-op, so the sweeper may
	// safely retry or overlap its runs.
	Return(ctx context.Context, bookingID int64) (*model.Booking, error)

	// Cancel transitions ACTIVE -> CANCELLED and frees the vehicle. Only the
	// owning customer or an admin may cancel.
	Cancel(ctx context.Context, bookingID, actingID int64, role model.Role) (*model.Booking, error)

	// List returns every booking for admins, the caller's own otherwise.
	List(ctx context.Context, actingID int64, role model.Role) ([]Row, error)
}

type service struct {
	db TxBeginner
	r  bookingrepo.Repo
}

func New(db TxBeginner, r bookingrepo.Repo) Service { return &service{db: db, r: r} }

func (s *service) Create(ctx context.Context, customerID, vehicleID int64, start, end time.Time) (b *model.Booking, err error) {
	if !end.After(start) {
		return nil, makeErr(ErrInvalidDateRange)
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the vehicle row so the availability and overlap checks stay valid
	// until commit.
	v, err := s.r.GetVehicleForUpdate(ctx, tx, vehicleID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrVehicleNotFound)
		}
		return nil, err
	}
	if v.AvailabilityStatus == model.VehicleBooked {
		return nil, makeErr(ErrVehicleUnavailable)
	}

	overlap, err := s.r.HasOverlappingActive(ctx, tx, vehicleID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, makeErr(ErrDateConflict)
	}

	// Price is fixed at creation; later rate changes don't touch it.
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	b = &model.Booking{
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		RentStartDate: start,
		RentEndDate:   end,
		TotalPrice:    float64(days) * v.DailyRentPrice,
		Status:        model.BookingActive,
	}

	if err = s.r.Insert(ctx, tx, b); err != nil {
		return nil, err
	}
	if err = s.r.SetVehicleAvailability(ctx, tx, vehicleID, model.VehicleBooked); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Return(ctx context.Context, bookingID int64) (b *model.Booking, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b, err = s.r.GetForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrBookingNotFound)
		}
		return nil, err
	}

	switch b.Status {
	case model.BookingReturned:
		// already returned, nothing to do
		if err = tx.Commit(ctx); err != nil {
			return nil, err
		}
		return b, nil
	case model.BookingCancelled:
		return nil, makeErr(ErrNotActive)
	}

	now := time.Now().UTC()
	if err = s.r.MarkReturned(ctx, tx, bookingID, now); err != nil {
		return nil, err
	}
	if err = s.r.SetVehicleAvailability(ctx, tx, b.VehicleID, model.VehicleAvailable); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	b.Status = model.BookingReturned
	b.ReturnedAt = &now
	return b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID, actingID int64, role model.Role) (b *model.Booking, err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	b, err = s.r.GetForUpdate(ctx, tx, bookingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrBookingNotFound)
		}
		return nil, err
	}
	if role != model.RoleAdmin && b.CustomerID != actingID {
		return nil, makeErr(ErrForbidden)
	}
	if b.Status != model.BookingActive {
		return nil, makeErr(ErrNotActive)
	}

	now := time.Now().UTC()
	if err = s.r.MarkCancelled(ctx, tx, bookingID, now); err != nil {
		return nil, err
	}
	if err = s.r.SetVehicleAvailability(ctx, tx, b.VehicleID, model.VehicleAvailable); err != nil {
		return nil, err
	}
	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}

	b.Status = model.BookingCancelled
	b.CancelledAt = &now
	return b, nil
}

func (s *service) List(ctx context.Context, actingID int64, role model.Role) ([]Row, error) {
	if role == model.RoleAdmin {
		return s.r.ListAll(ctx)
	}
	return s.r.ListByCustomer(ctx, actingID)
}
