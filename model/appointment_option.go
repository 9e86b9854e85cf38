package model

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AppointmentOption represents a bookable treatment type and its daily slot
// template. The template is fixed: remaining availability is derived per
// request by subtracting booked slots, never by mutating this row.
// @Description Treatment type with price and daily slot template
type AppointmentOption struct {
	gorm.Model
	Name  string                      `json:"name" gorm:"column:name;type:varchar(191);uniqueIndex;not null" example:"Teeth Cleaning"`
	Price float64                     `json:"price" gorm:"column:price;not null" example:"99"`
	Slots datatypes.JSONSlice[string] `json:"slots" gorm:"column:slots" example:"09:00 AM - 10:00 AM"`
}

var defaultAppointmentOptions = []AppointmentOption{
	{Name: "Teeth Orthodontics", Price: 99, Slots: defaultSlots()},
	{Name: "Cosmetic Dentistry", Price: 120, Slots: defaultSlots()},
	{Name: "Teeth Cleaning", Price: 80, Slots: defaultSlots()},
	{Name: "Cavity Protection", Price: 90, Slots: defaultSlots()},
	{Name: "Pediatric Dental", Price: 100, Slots: defaultSlots()},
	{Name: "Oral Surgery", Price: 250, Slots: defaultSlots()},
}

func defaultSlots() datatypes.JSONSlice[string] {
	return datatypes.JSONSlice[string]{
		"08:00 AM - 09:00 AM",
		"09:00 AM - 10:00 AM",
		"10:00 AM - 11:00 AM",
		"11:00 AM - 12:00 PM",
		"01:00 PM - 02:00 PM",
		"02:00 PM - 03:00 PM",
		"03:00 PM - 04:00 PM",
		"04:00 PM - 05:00 PM",
	}
}

// SeedAppointmentOptions inserts the default treatment catalog, skipping
// options that already exist so it is safe to run on every startup.
func SeedAppointmentOptions(db *gorm.DB) error {
	for _, option := range defaultAppointmentOptions {
		var existing AppointmentOption
		err := db.Where("name = ?", option.Name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&option).Error; err != nil {
			return fmt.Errorf("failed to seed appointment option %s: %w", option.Name, err)
		}
	}
	return nil
}
