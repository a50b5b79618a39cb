package usersvc

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	userrepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/user"
)

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrForbidden     ErrCode = "FORBIDDEN"
	ErrActiveBooking ErrCode = "ACTIVE_BOOKING"
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

// BookingGuard answers whether a user still holds an ACTIVE booking.
type BookingGuard interface {
	HasActiveByCustomer(ctx context.Context, customerID int64) (bool, error)
}

type Service interface {
	List(ctx context.Context, actingID int64, role model.Role) ([]model.User, error)
	Get(ctx context.Context, id, actingID int64, role model.Role) (*model.User, error)
	Update(ctx context.Context, id int64, name, phone string, actingID int64, role model.Role) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	ur userrepo.Repo
	bg BookingGuard
}

func New(ur userrepo.Repo, bg BookingGuard) Service { return &service{ur: ur, bg: bg} }

func (s *service) List(ctx context.Context, actingID int64, role model.Role) ([]model.User, error) {
	if role == model.RoleAdmin {
		return s.ur.List(ctx)
	}
	// non-admins only see themselves
	u, err := s.ur.ByID(ctx, actingID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []model.User{}, nil
		}
		return nil, err
	}
	return []model.User{*u}, nil
}

func (s *service) Get(ctx context.Context, id, actingID int64, role model.Role) (*model.User, error) {
	if role != model.RoleAdmin && actingID != id {
		return nil, makeErr(ErrForbidden)
	}
	u, err := s.ur.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Update(ctx context.Context, id int64, name, phone string, actingID int64, role model.Role) (*model.User, error) {
	if role != model.RoleAdmin && actingID != id {
		return nil, makeErr(ErrForbidden)
	}
	u, err := s.ur.Update(ctx, id, name, phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

// Delete is admin-only; the route gate enforces the role. A user holding an
// ACTIVE booking cannot be deleted.
func (s *service) Delete(ctx context.Context, id int64) error {
	active, err := s.bg.HasActiveByCustomer(ctx, id)
	if err != nil {
		return err
	}
	if active {
		return makeErr(ErrActiveBooking)
	}
	deleted, err := s.ur.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return makeErr(ErrNotFound)
	}
	return nil
}
