package booking

import (
	"time"
)

type CreateBookingReq struct {
	VehicleID     int64  `json:"vehicle_id" validate:"required,gt=0"`
	RentStartDate string `json:"rent_start_date" validate:"required"`
	RentEndDate   string `json:"rent_end_date" validate:"required"`
}

type UpdateBookingReq struct {
	Status string `json:"status" validate:"required,oneof=returned cancelled"`
}

// parseDate accepts RFC3339 timestamps or bare dates.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
