package vehiclesvc

import (
	"context"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	vehiclerepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/vehicle"
)

type mockRepo struct {
	createFn func(v *model.Vehicle) error
	byIDFn   func(id int64) (*model.Vehicle, error)
	updateFn func(v *model.Vehicle) error
	deleteFn func(id int64) (bool, error)
}

var _ vehiclerepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) Create(ctx context.Context, v *model.Vehicle) error { return m.createFn(v) }
func (m *mockRepo) List(ctx context.Context) ([]model.Vehicle, error)  { return nil, nil }
func (m *mockRepo) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	return m.byIDFn(id)
}
func (m *mockRepo) Update(ctx context.Context, v *model.Vehicle) error { return m.updateFn(v) }
func (m *mockRepo) Delete(ctx context.Context, id int64) (bool, error) { return m.deleteFn(id) }

type mockGuard struct{ active bool }

func (g *mockGuard) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	return g.active, nil
}

func uniqueViolation() error {
	return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "vehicles_registration_number_key"}
}

func TestCreate_DefaultsToAvailable(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(v *model.Vehicle) error { v.ID = 1; return nil },
	}
	svc := New(m, &mockGuard{})

	v := &model.Vehicle{Name: "Corolla", Type: model.VehicleCar, RegistrationNumber: "DHK-1", DailyRentPrice: 100}
	require.NoError(t, svc.Create(ctx, v))
	require.Equal(t, model.VehicleAvailable, v.AvailabilityStatus)
}

func TestCreate_DuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		createFn: func(v *model.Vehicle) error { return uniqueViolation() },
	}
	svc := New(m, &mockGuard{})

	err := svc.Create(ctx, &model.Vehicle{Name: "Dup", Type: model.VehicleCar, RegistrationNumber: "DHK-1", DailyRentPrice: 100})
	require.Equal(t, ErrRegistrationTaken, Code(err))
}

func TestGet_NotFound(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(id int64) (*model.Vehicle, error) { return nil, pgx.ErrNoRows },
	}
	svc := New(m, &mockGuard{})

	_, err := svc.Get(ctx, 99)
	require.Equal(t, ErrNotFound, Code(err))
}

func TestUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(id int64) (*model.Vehicle, error) {
			return &model.Vehicle{
				ID: id, Name: "Corolla", Type: model.VehicleCar,
				RegistrationNumber: "DHK-1", DailyRentPrice: 100,
				AvailabilityStatus: model.VehicleAvailable,
			}, nil
		},
		updateFn: func(v *model.Vehicle) error { return nil },
	}
	svc := New(m, &mockGuard{})

	price := 150.0
	v, err := svc.Update(ctx, 5, UpdateFields{DailyRentPrice: &price})
	require.NoError(t, err)
	require.Equal(t, 150.0, v.DailyRentPrice)
	// untouched fields survive
	require.Equal(t, "Corolla", v.Name)
	require.Equal(t, "DHK-1", v.RegistrationNumber)
}

func TestUpdate_DuplicateRegistration(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, RegistrationNumber: "DHK-1"}, nil
		},
		updateFn: func(v *model.Vehicle) error { return uniqueViolation() },
	}
	svc := New(m, &mockGuard{})

	reg := "DHK-2"
	_, err := svc.Update(ctx, 5, UpdateFields{RegistrationNumber: &reg})
	require.Equal(t, ErrRegistrationTaken, Code(err))
}

func TestDelete_BlockedWhileBooked(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, AvailabilityStatus: model.VehicleBooked}, nil
		},
		deleteFn: func(id int64) (bool, error) {
			t.Fatal("delete must not run while the vehicle is booked")
			return false, nil
		},
	}
	svc := New(m, &mockGuard{})

	err := svc.Delete(ctx, 5)
	require.Equal(t, ErrActiveBooking, Code(err))
}

func TestDelete_BlockedByActiveBooking(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, AvailabilityStatus: model.VehicleAvailable}, nil
		},
	}
	svc := New(m, &mockGuard{active: true})

	err := svc.Delete(ctx, 5)
	require.Equal(t, ErrActiveBooking, Code(err))
}

func TestDelete_Success(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		byIDFn: func(id int64) (*model.Vehicle, error) {
			return &model.Vehicle{ID: id, AvailabilityStatus: model.VehicleAvailable}, nil
		},
		deleteFn: func(id int64) (bool, error) { return true, nil },
	}
	svc := New(m, &mockGuard{})

	require.NoError(t, svc.Delete(ctx, 5))
}
