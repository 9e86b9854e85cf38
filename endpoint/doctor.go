package endpoint

import (
	"errors"
	"fmt"

	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterDoctorRequest is the payload for adding a doctor to the roster.
type RegisterDoctorRequest struct {
	Name      string `json:"name" binding:"required" example:"Dr. Jane Smith"`
	Email     string `json:"email" binding:"required,email" example:"dr.jane@example.com"`
	Specialty string `json:"specialty" binding:"required" example:"Cosmetic Dentistry"`
	ImageURL  string `json:"image" example:"https://example.com/dr-jane.jpg"`
	Bio       string `json:"bio" example:"15 years of practice"`
}

// RegisterDoctor godoc
// @Summary      Register a doctor
// @Description  Adds a doctor record to the roster
// @Tags         Doctors
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body RegisterDoctorRequest true "Doctor details"
// @Success      200 {object} util.APIResponse "Doctor registered"
// @Failure      400 {object} util.APIResponse "Invalid payload or duplicate email"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors [post]
func RegisterDoctor(c *gin.Context) {
	claimEmail, ok := getClaimEmailOrRespond(c)
	if !ok {
		return
	}

	var req RegisterDoctorRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	doctor := model.Doctor{
		Name:      util.NormalizeName(req.Name),
		Email:     req.Email,
		Specialty: req.Specialty,
		ImageURL:  req.ImageURL,
		Bio:       req.Bio,
	}
	if err := db.Create(&doctor).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.CallUserError(c, util.APIErrorParams{Msg: "A doctor with this email already exists", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to register doctor", Err: err})
		return
	}

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventDoctorRegistered,
		Email:     claimEmail,
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Doctor %s registered", doctor.Email),
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor registered", Data: doctor})
}

// ListDoctors godoc
// @Summary      List the doctor roster
// @Description  Returns every doctor record; admin only
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Doctors"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Admin role required"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctors [get]
func ListDoctors(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var doctors []model.Doctor
	if err := db.Order("id").Find(&doctors).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load doctors", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctors", Data: doctors})
}

// RemoveDoctor godoc
// @Summary      Remove a doctor
// @Description  Deletes a doctor record by id; deleting an absent id still succeeds
// @Tags         Doctors
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Doctor ID"
// @Success      200 {object} util.APIResponse "Doctor removed"
// @Failure      400 {object} util.APIResponse "Malformed id"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /doctor/{id} [delete]
func RemoveDoctor(c *gin.Context) {
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

	if err := db.Delete(&model.Doctor{}, id).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to remove doctor", Err: err})
		return
	}

	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventDoctorRemoved,
		Email:     claimEmail,
		IP:        c.ClientIP(),
		Message:   fmt.Sprintf("Doctor %d removed", id),
	})
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Doctor removed"})
}
