package vehicle

import (
	"github.com/ZakariaZack98/PH-vehicle-rental/model"
	vehiclesvc "github.com/ZakariaZack98/PH-vehicle-rental/service/vehicle"
)

type CreateVehicleReq struct {
	Name               string  `json:"name" validate:"required"`
	Type               string  `json:"type" validate:"required,oneof=CAR BIKE VAN SUV"`
	RegistrationNumber string  `json:"registration_number" validate:"required"`
	DailyRentPrice     float64 `json:"daily_rent_price" validate:"required,gt=0"`
	AvailabilityStatus string  `json:"availability_status" validate:"omitempty,oneof=AVAILABLE BOOKED"`
}

type UpdateVehicleReq struct {
	Name               *string  `json:"name" validate:"omitempty,min=1"`
	Type               *string  `json:"type" validate:"omitempty,oneof=CAR BIKE VAN SUV"`
	RegistrationNumber *string  `json:"registration_number" validate:"omitempty,min=1"`
	DailyRentPrice     *float64 `json:"daily_rent_price" validate:"omitempty,gt=0"`
	AvailabilityStatus *string  `json:"availability_status" validate:"omitempty,oneof=AVAILABLE BOOKED"`
}

func (r UpdateVehicleReq) fields() vehiclesvc.UpdateFields {
	f := vehiclesvc.UpdateFields{
		Name:               r.Name,
		RegistrationNumber: r.RegistrationNumber,
		DailyRentPrice:     r.DailyRentPrice,
	}
	if r.Type != nil {
		t := model.VehicleType(*r.Type)
		f.Type = &t
	}
	if r.AvailabilityStatus != nil {
		s := model.AvailabilityStatus(*r.AvailabilityStatus)
		f.AvailabilityStatus = &s
	}
	return f
}
