package vehiclerepo

import (
	"context"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	"github.com/ZakariaZack98/PH-vehicle-rental/util/database"
)

type Repo interface {
	Create(ctx context.Context, v *model.Vehicle) error
	List(ctx context.Context) ([]model.Vehicle, error)
	ByID(ctx context.Context, id int64) (*model.Vehicle, error)
	Update(ctx context.Context, v *model.Vehicle) error
	Delete(ctx context.Context, id int64) (bool, error)
}

type repo struct{ db *database.DB }

func New(db *database.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, v *model.Vehicle) error {
	return r.db.Pool.QueryRow(ctx, `
		INSERT INTO vehicles(name, type, registration_number, daily_rent_price, availability_status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		v.Name, v.Type, v.RegistrationNumber, v.DailyRentPrice, v.AvailabilityStatus,
	).Scan(&v.ID, &v.CreatedAt)
}

func (r *repo) List(ctx context.Context) ([]model.Vehicle, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT id, name, type, registration_number, daily_rent_price, availability_status, created_at
		FROM vehicles
		ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Vehicle
	for rows.Next() {
		var v model.Vehicle
		if err := rows.Scan(&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Vehicle, error) {
	v := &model.Vehicle{}
	err := r.db.Pool.QueryRow(ctx, `
		SELECT id, name, type, registration_number, daily_rent_price, availability_status, created_at
		FROM vehicles
		WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Name, &v.Type, &v.RegistrationNumber, &v.DailyRentPrice, &v.AvailabilityStatus, &v.CreatedAt)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func (r *repo) Update(ctx context.Context, v *model.Vehicle) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE vehicles
		SET name = $2,
			type = $3,
			registration_number = $4,
			daily_rent_price = $5,
			availability_status = $6
		WHERE id = $1`,
		v.ID, v.Name, v.Type, v.RegistrationNumber, v.DailyRentPrice, v.AvailabilityStatus,
	)
	return err
}

func (r *repo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM vehicles WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
