package authsvc

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	userrepo "github.com/ZakariaZack98/PH-vehicle-rental/repository/user"
	"github.com/ZakariaZack98/PH-vehicle-rental/util/hash"
	jwtutil "github.com/ZakariaZack98/PH-vehicle-rental/util/jwt"
)

// errors used by controllers

type ErrCode string

const (
	ErrEmailTaken   ErrCode = "EMAIL_TAKEN"
	ErrInvalidCreds ErrCode = "INVALID_CREDENTIALS"
	ErrBadInput     ErrCode = "BAD_INPUT"
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

type Service interface {
	Signup(ctx context.Context, req model.SignupReq) (*model.User, error)
	Signin(ctx context.Context, req model.SigninReq) (*model.User, string, error)
}

type service struct {
	ur       userrepo.Repo
	secret   string
	ttlHours int
}

func New(ur userrepo.Repo, secret string, ttlHours int) Service {
	return &service{ur: ur, secret: secret, ttlHours: ttlHours}
}

func (s *service) Signup(ctx context.Context, req model.SignupReq) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return nil, makeErr(ErrBadInput)
	}

	existing, err := s.ur.ByEmail(ctx, email)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, makeErr(ErrEmailTaken)
	}

	hashed, err := hash.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := model.RoleCustomer
	if strings.EqualFold(req.Role, string(model.RoleAdmin)) {
		role = model.RoleAdmin
	}

	u := &model.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hashed,
		Phone:        req.Phone,
		Role:         role,
	}
	if err := s.ur.Create(ctx, u); err != nil {
		// unique index backstop, the pre-check above races
		if isUniqueViolation(err) {
			return nil, makeErr(ErrEmailTaken)
		}
		return nil, err
	}
	return u, nil
}

func (s *service) Signin(ctx context.Context, req model.SigninReq) (*model.User, string, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, "", makeErr(ErrBadInput)
	}

	u, err := s.ur.ByEmail(ctx, email)
	if err != nil || u == nil {
		return nil, "", makeErr(ErrInvalidCreds)
	}
	if !hash.Check(u.PasswordHash, req.Password) {
		return nil, "", makeErr(ErrInvalidCreds)
	}

	token, err := jwtutil.Issue(s.secret, u.ID, string(u.Role), s.ttlHours)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
