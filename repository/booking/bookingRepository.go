package bookingrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	"github.com/ZakariaZack98/PH-vehicle-rental/util/database"
)

// Row is a booking joined with vehicle info (and customer info for admin
// listings).
type Row struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	VehicleID     int64     `json:"vehicle_id"`
	RentStartDate time.Time `json:"rent_start_date"`
	RentEndDate   time.Time `json:"rent_end_date"`
	TotalPrice    float64   `json:"total_price"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`

	VehicleName        string            `json:"vehicle_name"`
	RegistrationNumber string            `json:"registration_number"`
	VehicleType        model.VehicleType `json:"vehicle_type,omitempty"`

	CustomerName  *string `json:"customer_name,omitempty"`
	CustomerEmail *string `json:"customer_email,omitempty"`
}

type Repo interface {
	// Transactional lifecycle methods. The caller owns the transaction so
	// the booking and vehicle writes commit or roll back together.
	GetVehicleForUpdate(ctx context.Context, tx pgx.Tx, vehicleID int64) (*model.Vehicle, error)
	HasOverlappingActive(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error)
	Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error
	GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (*model.Booking, error)
	MarkReturned(ctx context.Context, tx pgx.Tx, bookingID int64, at time.Time) error
	MarkCancelled(ctx context.Context, tx pgx.Tx, bookingID int64, at time.Time) error
	SetVehicleAvailability(ctx context.Context, tx pgx.Tx, vehicleID int64, status model.AvailabilityStatus) error

	// Listings and guards.
	ListAll(ctx context.Context) ([]Row, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]Row, error)
	ListOverdueActiveIDs(ctx context.Context, now time.Time) ([]int64, error)
	HasActiveByCustomer(ctx context.Context, customerID int64) (bool, error)
	HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) GetVehicleForUpdate(ctx context.Context, tx pgx.Tx, vehicleID int64) (*model.Vehicle, error) {
	// Row lock closes the race between concurrent creates on the same vehicle.
	const q = `
		SELECT id, name, type, registration_number, daily_rent_price, availability_status, created_at
		FROM vehicles
		WHERE id = $1
		FOR UPDATE`
	v := &model.Vehicle{}
	err := tx.QueryRow(ctx, q, vehicleID).Scan(
		&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repo) HasOverlappingActive(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error) {
	// Inclusive bounds: existing.start <= newEnd AND existing.end >= newStart.
	const q = `
		SELECT EXISTS (
			SELECT 1
			FROM bookings
			WHERE vehicle_id = $1
			AND status = 'ACTIVE'
			AND rent_start_date <= $3
			AND rent_end_date >= $2
		)`
	var exists bool
	err := tx.QueryRow(ctx, q, vehicleID, start, end).Scan(&exists)
	return exists, err
}

func (r *repo) Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error {
	const q = `
		INSERT INTO bookings (customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return tx.QueryRow(ctx, q,
		b.CustomerID, b.VehicleID, b.RentStartDate, b.RentEndDate, b.TotalPrice, b.Status,
	).Scan(&b.ID, &b.CreatedAt)
}

func (r *repo) GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (*model.Booking, error) {
	const q = `
		SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, returned_at, cancelled_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE`
	b := &model.Booking{}
	err := tx.QueryRow(ctx, q, bookingID).Scan(
		&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate,
		&b.TotalPrice, &b.Status, &b.CreatedAt, &b.ReturnedAt, &b.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (r *repo) MarkReturned(ctx context.Context, tx pgx.Tx, bookingID int64, at time.Time) error {
	const q = `
		UPDATE bookings
		SET status = 'RETURNED',
			returned_at = $2
		WHERE id = $1`
	_, err := tx.Exec(ctx, q, bookingID, at)
	return err
}

func (r *repo) MarkCancelled(ctx context.Context, tx pgx.Tx, bookingID int64, at time.Time) error {
	const q = `
		UPDATE bookings
		SET status = 'CANCELLED',
			cancelled_at = $2
		WHERE id = $1`
	_, err := tx.Exec(ctx, q, bookingID, at)
	return err
}

func (r *repo) SetVehicleAvailability(ctx context.Context, tx pgx.Tx, vehicleID int64, status model.AvailabilityStatus) error {
	const q = `
		UPDATE vehicles
		SET availability_status = $2
		WHERE id = $1`
	_, err := tx.Exec(ctx, q, vehicleID, status)
	return err
}

func (r *repo) ListAll(ctx context.Context) ([]Row, error) {
	const q = `
		SELECT
		b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date,
		b.total_price, b.status, b.created_at,
		v.name, v.registration_number, v.type,
		u.name, u.email
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		JOIN users u ON u.id = b.customer_id
		ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.Pool.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows, true)
}

func (r *repo) ListByCustomer(ctx context.Context, customerID int64) ([]Row, error) {
	const q = `
		SELECT
		b.id, b.customer_id, b.vehicle_id, b.rent_start_date, b.rent_end_date,
		b.total_price, b.status, b.created_at,
		v.name, v.registration_number, v.type
		FROM bookings b
		JOIN vehicles v ON v.id = b.vehicle_id
		WHERE b.customer_id = $1
		ORDER BY b.created_at DESC, b.id DESC`
	rows, err := r.db.Pool.Query(ctx, q, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRows(rows, false)
}

func scanRows(rows pgx.Rows, withCustomer bool) ([]Row, error) {
	var out []Row
	for rows.Next() {
		var b Row
		dest := []any{
			&b.ID, &b.CustomerID, &b.VehicleID, &b.RentStartDate, &b.RentEndDate,
			&b.TotalPrice, &b.Status, &b.CreatedAt,
			&b.VehicleName, &b.RegistrationNumber, &b.VehicleType,
		}
		if withCustomer {
			dest = append(dest, &b.CustomerName, &b.CustomerEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *repo) ListOverdueActiveIDs(ctx context.Context, now time.Time) ([]int64, error) {
	const q = `
		SELECT id
		FROM bookings
		WHERE status = 'ACTIVE'
		AND rent_end_date < $1
		ORDER BY id`
	rows, err := r.db.Pool.Query(ctx, q, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repo) HasActiveByCustomer(ctx context.Context, customerID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE customer_id = $1 AND status = 'ACTIVE'
		)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, q, customerID).Scan(&exists)
	return exists, err
}

func (r *repo) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE vehicle_id = $1 AND status = 'ACTIVE'
		)`
	var exists bool
	err := r.db.Pool.QueryRow(ctx, q, vehicleID).Scan(&exists)
	return exists, err
}
