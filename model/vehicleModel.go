// model/vehicle.go
package model

import "time"

type VehicleType string

const (
	VehicleCar  VehicleType = "CAR"
	VehicleBike VehicleType = "BIKE"
	VehicleVan  VehicleType = "VAN"
	VehicleSUV  VehicleType = "SUV"
)

type AvailabilityStatus string

const (
	VehicleAvailable AvailabilityStatus = "AVAILABLE"
	VehicleBooked    AvailabilityStatus = "BOOKED"
)

type Vehicle struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	Type               VehicleType        `json:"type"`
	RegistrationNumber string             `json:"registration_number"`
	DailyRentPrice     float64            `json:"daily_rent_price"`
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	CreatedAt          time.Time          `json:"created_at"`
}
