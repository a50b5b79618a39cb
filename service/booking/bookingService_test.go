package bookingsvc

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	bookingrepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/booking"
)

// --- fakes ---

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Commit(ctx context.Context) error   { t.committed = true; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rolledBack = true; return nil }

type fakeDB struct{ tx *fakeTx }

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

type mockRepo struct {
	vehicleFn        func(vehicleID int64) (*model.Vehicle, error)
	overlapFn        func(vehicleID int64, start, end time.Time) (bool, error)
	insertFn         func(b *model.Booking) error
	getFn            func(bookingID int64) (*model.Booking, error)
	listAllFn        func() ([]bookingrepo.Row, error)
	listByCustomerFn func(customerID int64) ([]bookingrepo.Row, error)

	returnedIDs  []int64
	cancelledIDs []int64
	availability map[int64]model.AvailabilityStatus
}

var _ bookingrepo.Repo = (*mockRepo)(nil)

func (m *mockRepo) GetVehicleForUpdate(ctx context.Context, tx pgx.Tx, vehicleID int64) (*model.Vehicle, error) {
	return m.vehicleFn(vehicleID)
}

func (m *mockRepo) HasOverlappingActive(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error) {
	if m.overlapFn == nil {
		return false, nil
	}
	return m.overlapFn(vehicleID, start, end)
}

func (m *mockRepo) Insert(ctx context.Context, tx pgx.Tx, b *model.Booking) error {
	if m.insertFn == nil {
		b.ID = 1
		return nil
	}
	return m.insertFn(b)
}

func (m *mockRepo) GetForUpdate(ctx context.Context, tx pgx.Tx, bookingID int64) (*model.Booking, error) {
	return m.getFn(bookingID)
}

func (m *mockRepo) MarkReturned(ctx context.Context, tx pgx.Tx, bookingID int64, at time.Time) error {
	m.returnedIDs = append(m.returnedIDs, bookingID)
	return nil
}

func (m *mockRepo) MarkCancelled(ctx context.Context, tx pgx.Tx, bookingID int64, at time.Time) error {
	m.cancelledIDs = append(m.cancelledIDs, bookingID)
	return nil
}

func (m *mockRepo) SetVehicleAvailability(ctx context.Context, tx pgx.Tx, vehicleID int64, status model.AvailabilityStatus) error {
	if m.availability == nil {
		m.availability = map[int64]model.AvailabilityStatus{}
	}
	m.availability[vehicleID] = status
	return nil
}

func (m *mockRepo) ListAll(ctx context.Context) ([]bookingrepo.Row, error) {
	return m.listAllFn()
}

func (m *mockRepo) ListByCustomer(ctx context.Context, customerID int64) ([]bookingrepo.Row, error) {
	return m.listByCustomerFn(customerID)
}

func (m *mockRepo) ListOverdueActiveIDs(ctx context.Context, now time.Time) ([]int64, error) {
	return nil, nil
}

func (m *mockRepo) HasActiveByCustomer(ctx context.Context, customerID int64) (bool, error) {
	return false, nil
}

func (m *mockRepo) HasActiveByVehicle(ctx context.Context, vehicleID int64) (bool, error) {
	return false, nil
}

func availableVehicle(id int64, price float64) *model.Vehicle {
	return &model.Vehicle{
		ID:                 id,
		Name:               "Corolla",
		Type:               model.VehicleCar,
		RegistrationNumber: "DHK-1234",
		DailyRentPrice:     price,
		AvailabilityStatus: model.VehicleAvailable,
	}
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// --- Create ---

func TestCreate_InvalidDateRange(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	svc := New(&fakeDB{tx: tx}, &mockRepo{})

	_, err := svc.Create(ctx, 1, 1, day("2024-01-04"), day("2024-01-01"))
	require.Error(t, err)
	require.Equal(t, ErrInvalidDateRange, Code(err))

	// equal dates are invalid too
	_, err = svc.Create(ctx, 1, 1, day("2024-01-01"), day("2024-01-01"))
	require.Equal(t, ErrInvalidDateRange, Code(err))
	require.False(t, tx.committed)
}

func TestCreate_VehicleNotFound(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		vehicleFn: func(id int64) (*model.Vehicle, error) { return nil, pgx.ErrNoRows },
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Create(ctx, 1, 99, day("2024-01-01"), day("2024-01-04"))
	require.Equal(t, ErrVehicleNotFound, Code(err))
	require.True(t, tx.rolledBack)
}

func TestCreate_VehicleUnavailable(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		vehicleFn: func(id int64) (*model.Vehicle, error) {
			v := availableVehicle(id, 100)
			v.AvailabilityStatus = model.VehicleBooked
			return v, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Create(ctx, 1, 5, day("2024-01-01"), day("2024-01-04"))
	require.Equal(t, ErrVehicleUnavailable, Code(err))
	require.False(t, tx.committed)
}

func TestCreate_DateConflict(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		vehicleFn: func(id int64) (*model.Vehicle, error) { return availableVehicle(id, 100), nil },
		overlapFn: func(id int64, start, end time.Time) (bool, error) { return true, nil },
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Create(ctx, 1, 5, day("2024-01-03"), day("2024-01-05"))
	require.Equal(t, ErrDateConflict, Code(err))
	require.False(t, tx.committed)
	require.True(t, tx.rolledBack)
}

func TestCreate_Success(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		vehicleFn: func(id int64) (*model.Vehicle, error) { return availableVehicle(id, 100), nil },
		insertFn: func(b *model.Booking) error {
			b.ID = 42
			b.CreatedAt = time.Now().UTC()
			return nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	b, err := svc.Create(ctx, 7, 5, day("2024-01-01"), day("2024-01-04"))
	require.NoError(t, err)
	require.Equal(t, int64(42), b.ID)
	require.Equal(t, int64(7), b.CustomerID)
	require.Equal(t, model.BookingActive, b.Status)
	require.Equal(t, 300.0, b.TotalPrice)
	require.Equal(t, model.VehicleBooked, m.availability[5])
	require.True(t, tx.committed)
}

func TestCreate_PartialDayRoundsUp(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		vehicleFn: func(id int64) (*model.Vehicle, error) { return availableVehicle(id, 100), nil },
	}
	svc := New(&fakeDB{tx: tx}, m)

	// 26 hours -> 2 billable days
	start := day("2024-01-01").Add(10 * time.Hour)
	end := day("2024-01-02").Add(12 * time.Hour)
	b, err := svc.Create(ctx, 1, 5, start, end)
	require.NoError(t, err)
	require.Equal(t, 200.0, b.TotalPrice)
}

// --- Return ---

func TestReturn_NotFound(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) { return nil, pgx.ErrNoRows },
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Return(ctx, 99)
	require.Equal(t, ErrBookingNotFound, Code(err))
}

func TestReturn_Success(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, CustomerID: 7, VehicleID: 5, Status: model.BookingActive}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	b, err := svc.Return(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, model.BookingReturned, b.Status)
	require.NotNil(t, b.ReturnedAt)
	require.Equal(t, []int64{3}, m.returnedIDs)
	require.Equal(t, model.VehicleAvailable, m.availability[5])
	require.True(t, tx.committed)
}

func TestReturn_AlreadyReturnedIsNoop(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	at := day("2024-01-05")
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, VehicleID: 5, Status: model.BookingReturned, ReturnedAt: &at}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	b, err := svc.Return(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, model.BookingReturned, b.Status)
	// no writes on the second call
	require.Empty(t, m.returnedIDs)
	require.Empty(t, m.availability)
}

func TestReturn_CancelledIsNotActive(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, VehicleID: 5, Status: model.BookingCancelled}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Return(ctx, 3)
	require.Equal(t, ErrNotActive, Code(err))
	require.Empty(t, m.returnedIDs)
}

// --- Cancel ---

func TestCancel_OwnerSuccess(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, CustomerID: 7, VehicleID: 5, Status: model.BookingActive}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	b, err := svc.Cancel(ctx, 3, 7, model.RoleCustomer)
	require.NoError(t, err)
	require.Equal(t, model.BookingCancelled, b.Status)
	require.NotNil(t, b.CancelledAt)
	require.Equal(t, []int64{3}, m.cancelledIDs)
	require.Equal(t, model.VehicleAvailable, m.availability[5])
	require.True(t, tx.committed)
}

func TestCancel_ForbiddenForOtherCustomer(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, CustomerID: 7, VehicleID: 5, Status: model.BookingActive}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Cancel(ctx, 3, 8, model.RoleCustomer)
	require.Equal(t, ErrForbidden, Code(err))
	require.Empty(t, m.cancelledIDs)
}

func TestCancel_AdminAllowed(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, CustomerID: 7, VehicleID: 5, Status: model.BookingActive}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	b, err := svc.Cancel(ctx, 3, 1, model.RoleAdmin)
	require.NoError(t, err)
	require.Equal(t, model.BookingCancelled, b.Status)
}

func TestCancel_NotActive(t *testing.T) {
	ctx := context.Background()
	tx := &fakeTx{}
	m := &mockRepo{
		getFn: func(id int64) (*model.Booking, error) {
			return &model.Booking{ID: id, CustomerID: 7, VehicleID: 5, Status: model.BookingReturned}, nil
		},
	}
	svc := New(&fakeDB{tx: tx}, m)

	_, err := svc.Cancel(ctx, 3, 7, model.RoleCustomer)
	require.Equal(t, ErrNotActive, Code(err))
}

// --- List ---

func TestList_AdminSeesAll(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		listAllFn: func() ([]bookingrepo.Row, error) {
			return []bookingrepo.Row{{ID: 1}, {ID: 2}}, nil
		},
		listByCustomerFn: func(customerID int64) ([]bookingrepo.Row, error) {
			t.Fatal("admin listing must not filter by customer")
			return nil, nil
		},
	}
	svc := New(&fakeDB{tx: &fakeTx{}}, m)

	rows, err := svc.List(ctx, 1, model.RoleAdmin)
	require.NoError(t, err)
	require.Len(t, rows, 2)
}

func TestList_CustomerSeesOwn(t *testing.T) {
	ctx := context.Background()
	m := &mockRepo{
		listByCustomerFn: func(customerID int64) ([]bookingrepo.Row, error) {
			require.Equal(t, int64(7), customerID)
			return []bookingrepo.Row{{ID: 1, CustomerID: 7}}, nil
		},
	}
	svc := New(&fakeDB{tx: &fakeTx{}}, m)

	rows, err := svc.List(ctx, 7, model.RoleCustomer)
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestCodeExtractor(t *testing.T) {
	require.Equal(t, ErrDateConflict, Code(makeErr(ErrDateConflict)))
	require.Equal(t, ErrCode(""), Code(errors.New("plain")))
}
