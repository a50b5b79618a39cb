// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingActive    BookingStatus = "ACTIVE"
	BookingReturned  BookingStatus = "RETURNED"
	BookingCancelled BookingStatus = "CANCELLED"
)

type Booking struct {
	ID            int64         `json:"id"`
	CustomerID    int64         `json:"customer_id"`
	VehicleID     int64         `json:"vehicle_id"`
	RentStartDate time.Time     `json:"rent_start_date"`
	RentEndDate   time.Time     `json:"rent_end_date"`
	TotalPrice    float64       `json:"total_price"`
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	ReturnedAt    *time.Time    `json:"returned_at,omitempty"`
	CancelledAt   *time.Time    `json:"cancelled_at,omitempty"`
}
