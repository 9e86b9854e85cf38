package endpoint

import (
	"errors"
	"fmt"

	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateBookingRequest is the payload for booking an appointment slot.
type CreateBookingRequest struct {
	Email           string `json:"email" binding:"required,email" example:"patient@example.com"`
	Treatment       string `json:"treatment" binding:"required" example:"Teeth Cleaning"`
	AppointmentDate string `json:"appointmentDate" binding:"required" example:"2024-01-01"`
	Slot            string `json:"slot" binding:"required" example:"09:00 AM - 10:00 AM"`
	PatientName     string `json:"patientName" example:"John Doe"`
	Phone           string `json:"phone" example:"+8801700000000"`
}

// BookingResult is the structured outcome of a booking attempt. A duplicate
// triple is a business rejection, not a transport error, so it travels in
// this payload with Acknowledged=false rather than as an HTTP error status.
type BookingResult struct {
	Acknowledged bool           `json:"acknowledged"`
	Message      string         `json:"message,omitempty"`
	Booking      *model.Booking `json:"booking,omitempty"`
}

func duplicateBookingMessage(date string) string {
	return fmt.Sprintf("You already have a booking on %s", date)
}

// validateBookingTarget checks that the requested treatment exists and that
// the chosen slot belongs to its template. The treatment reference is not a
// foreign key, so it has to be validated here.
func validateBookingTarget(c *gin.Context, db *gorm.DB, req *CreateBookingRequest) bool {
	var option model.AppointmentOption
	err := db.Where("name = ?", req.Treatment).First(&option).Error
	if err == gorm.ErrRecordNotFound {
		util.CallErrorNotFound(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Unknown treatment %q", req.Treatment),
			Err: err,
		})
		return false
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load treatment", Err: err})
		return false
	}
	if !util.Contains(req.Slot, option.Slots) {
		util.CallUserError(c, util.APIErrorParams{
			Msg: fmt.Sprintf("Slot %q is not offered for %s", req.Slot, option.Name),
			Err: fmt.Errorf("slot not in treatment template"),
		})
		return false
	}
	return true
}

// CreateBooking godoc
// @Summary      Book an appointment slot
// @Description  Creates a booking unless one already exists for the same email, treatment and date
// @Tags         Bookings
// @Accept       json
// @Produce      json
// @Param        request body CreateBookingRequest true "Booking details"
// @Success      200 {object} util.APIResponse{data=BookingResult} "Booking outcome"
// @Failure      400 {object} util.APIResponse "Invalid request payload"
// @Failure      404 {object} util.APIResponse "Unknown treatment"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /bookings [post]
func CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	if !validateBookingTarget(c, db, &req) {
		return
	}

	// Read check first for a friendly rejection; the unique index on the
	// triple is what actually closes the race between concurrent requests.
	var existing model.Booking
	err := db.Where("email = ? AND treatment = ? AND appointment_date = ?",
		req.Email, req.Treatment, req.AppointmentDate).First(&existing).Error
	if err == nil {
		util.CallSuccessOK(c, util.APISuccessParams{
			Msg:  "Booking rejected",
			Data: BookingResult{Acknowledged: false, Message: duplicateBookingMessage(req.AppointmentDate)},
		})
		return
	}
	if err != gorm.ErrRecordNotFound {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to check existing bookings", Err: err})
		return
	}

	booking := model.Booking{
		Email:           req.Email,
		Treatment:       req.Treatment,
		AppointmentDate: req.AppointmentDate,
		Slot:            req.Slot,
		PatientName:     util.NormalizeName(req.PatientName),
		Phone:           req.Phone,
	}
	if err := db.Create(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent request won the insert between our check and now.
			util.CallSuccessOK(c, util.APISuccessParams{
				Msg:  "Booking rejected",
				Data: BookingResult{Acknowledged: false, Message: duplicateBookingMessage(req.AppointmentDate)},
			})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create booking", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Booking confirmed",
		Data: BookingResult{Acknowledged: true, Booking: &booking},
	})
}

// ListBookings godoc
// @Summary      List the caller's bookings
// @Description  Returns all bookings for the requested email; callers may only request their own
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Param        email query string true "Account email" example("patient@example.com")
// @Success      200 {object} util.APIResponse "Bookings"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Email does not match the authenticated identity"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /bookings [get]
func ListBookings(c *gin.Context) {
	claimEmail, ok := getClaimEmailOrRespond(c)
	if !ok {
		return
	}

	email := c.Query("email")
	if email != claimEmail {
		util.LogForbiddenAccess(claimEmail, c.ClientIP(), "requested bookings for another email")
		util.CallUserForbidden(c, util.APIErrorParams{
			Msg: "forbidden access",
			Err: fmt.Errorf("email does not match authenticated identity"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var bookings []model.Booking
	if err := db.Where("email = ?", email).Order("id").Find(&bookings).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load bookings", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Bookings", Data: bookings})
}

// GetBooking godoc
// @Summary      Fetch a booking by id
// @Description  Returns a single booking; restricted to its owner or an admin
// @Tags         Bookings
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Booking ID"
// @Success      200 {object} util.APIResponse "Booking"
// @Failure      400 {object} util.APIResponse "Malformed id"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Caller is neither owner nor admin"
// @Failure      404 {object} util.APIResponse "Booking not found"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /booking/{id} [get]
func GetBooking(c *gin.Context) {
	claimEmail, ok := getClaimEmailOrRespond(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var booking model.Booking
	if err := db.First(&booking, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.CallErrorNotFound(c, util.APIErrorParams{Msg: "Booking not found", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load booking", Err: err})
		return
	}

	if booking.Email != claimEmail {
		role, err := util.GetUserRole(db, claimEmail)
		if err != nil && err != gorm.ErrRecordNotFound {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to resolve caller role", Err: err})
			return
		}
		if role != model.RoleAdmin {
			util.LogForbiddenAccess(claimEmail, c.ClientIP(), "requested a booking owned by another account")
			util.CallUserForbidden(c, util.APIErrorParams{
				Msg: "forbidden access",
				Err: fmt.Errorf("booking belongs to another account"),
			})
			return
		}
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Booking", Data: booking})
}
