package userrepo

import (
	"context"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	"github.com/ZakariaZack98/PH-vehicle-rental/util/database"
)

type Repo interface {
	Create(ctx context.Context, u *model.User) error
	ByEmail(ctx context.Context, email string) (*model.User, error)
	ByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, id int64, name, phone string) (*model.User, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, u *model.User) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO users(name, email, password_hash, phone, role)
		VALUES ($1, lower($2), $3, $4, $5)
		RETURNING id, created_at`,
		u.Name, u.Email, u.PasswordHash, u.Phone, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
}

func (r *repo) ByEmail(ctx context.Context, email string) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, role, created_at
		FROM users
		WHERE lower(email) = lower($1)`,
		email,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.User, error) {
	u := &model.User{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, phone, role, created_at
		FROM users
		WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, email, password_hash, phone, role, created_at
		FROM users
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *repo) Update(ctx context.Context, id int64, name, phone string) (*model.User, error) {
	u := &model.User{}
	// empty fields keep their current value
	err := r.db.Pool.QueryRow(ctx, `
		UPDATE users
		SET name  = COALESCE(NULLIF($2, ''), name),
			phone = COALESCE(NULLIF($3, ''), phone)
		WHERE id = $1
		RETURNING id, name, email, password_hash, phone, role, created_at`,
		id, name, phone,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Phone, &u.Role, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
