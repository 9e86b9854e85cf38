package endpoint

import (
	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// remainingSlots filters a slot template down to the slots not consumed by
// any of the given bookings, preserving the template's order.
func remainingSlots(template []string, booked []model.Booking) []string {
	consumed := make([]string, 0, len(booked))
	for _, b := range booked {
		consumed = append(consumed, b.Slot)
	}

	remaining := make([]string, 0, len(template))
	for _, slot := range template {
		if !util.Contains(slot, consumed) {
			remaining = append(remaining, slot)
		}
	}
	return remaining
}

func loadBookingsForDate(db *gorm.DB, date string) ([]model.Booking, error) {
	var bookings []model.Booking
	err := db.Where("appointment_date = ?", date).Find(&bookings).Error
	return bookings, err
}

// ListAppointmentOptions godoc
// @Summary      List appointment options with remaining availability
// @Description  Returns every treatment option with its slot template reduced by slots already booked on the given date. Without a date the full templates are returned.
// @Tags         Availability
// @Produce      json
// @Param        date query string false "Appointment date" example("2024-01-01")
// @Success      200 {object} util.APIResponse "Appointment options"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /appointment-options [get]
func ListAppointmentOptions(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var options []model.AppointmentOption
	if err := db.Order("id").Find(&options).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load appointment options", Err: err})
		return
	}

	date := c.Query("date")
	if date == "" {
		// No date means no bookings to subtract; templates go out as-is.
		util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment options", Data: options})
		return
	}

	booked, err := loadBookingsForDate(db, date)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load bookings", Err: err})
		return
	}

	bookedByTreatment := make(map[string][]model.Booking, len(booked))
	for _, b := range booked {
		bookedByTreatment[b.Treatment] = append(bookedByTreatment[b.Treatment], b)
	}

	// The stored templates are never mutated; availability is computed on a
	// per-request copy.
	for i := range options {
		options[i].Slots = datatypes.NewJSONSlice(remainingSlots(options[i].Slots, bookedByTreatment[options[i].Name]))
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Appointment options", Data: options})
}

// SpecialtyResponse is the name-only projection of an appointment option.
type SpecialtyResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Teeth Cleaning"`
}

// ListSpecialties godoc
// @Summary      List treatment names
// @Description  Returns the name projection of every appointment option
// @Tags         Availability
// @Produce      json
// @Success      200 {object} util.APIResponse "Specialties"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /specialties [get]
func ListSpecialties(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var specialties []SpecialtyResponse
	if err := db.Model(&model.AppointmentOption{}).Order("id").Select("id, name").Find(&specialties).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load specialties", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Specialties", Data: specialties})
}
