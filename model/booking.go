package model

import "gorm.io/gorm"

// Booking represents a confirmed appointment reservation.
// The compound unique index on (email, treatment, appointment_date) enforces
// the one-booking-per-treatment-per-day rule at the storage layer, so two
// concurrent creates for the same triple can never both commit.
// @Description Appointment booking record
type Booking struct {
	gorm.Model
	Email           string `json:"email" gorm:"column:email;type:varchar(191);not null;uniqueIndex:idx_booking_triple" example:"patient@example.com"`
	Treatment       string `json:"treatment" gorm:"column:treatment;type:varchar(191);not null;uniqueIndex:idx_booking_triple" example:"Teeth Cleaning"`
	AppointmentDate string `json:"appointmentDate" gorm:"column:appointment_date;type:varchar(32);not null;uniqueIndex:idx_booking_triple" example:"2024-01-01"`
	Slot            string `json:"slot" gorm:"column:slot;type:varchar(64);not null" example:"09:00 AM - 10:00 AM"`
	PatientName     string `json:"patientName" gorm:"column:patient_name;type:varchar(191)" example:"John Doe"`
	Phone           string `json:"phone" gorm:"column:phone;type:varchar(32)" example:"+8801700000000"`
}
