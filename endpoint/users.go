package endpoint

import (
	"errors"
	"fmt"

	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CreateUserRequest is the payload for registering an account. Roles are not
// client-assignable: every new account starts as a patient.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required" example:"John Doe"`
	Email string `json:"email" binding:"required,email" example:"john@example.com"`
}

// CreateUser godoc
// @Summary      Register an account
// @Description  Creates a user account with the default patient role
// @Tags         Users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "Account details"
// @Success      200 {object} util.APIResponse "Account created"
// @Failure      400 {object} util.APIResponse "Invalid payload or email already exists"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users [post]
func CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSONOrRespond(c, &req, "Invalid request payload") {
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	user := model.User{
		Name:  util.NormalizeName(req.Name),
		Email: &req.Email,
		Role:  model.RolePatient,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.CallUserError(c, util.APIErrorParams{Msg: "Email already exists", Err: err})
			return
		}
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create user", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "User created", Data: user})
}

// ListUsers godoc
// @Summary      List all accounts
// @Description  Returns every registered account; admin only
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} util.APIResponse "Users"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Admin role required"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /users [get]
func ListUsers(c *gin.Context) {
	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var users []model.User
	if err := db.Order("id").Find(&users).Error; err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load users", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Users", Data: users})
}

// AdminStatusResponse reports whether an account carries the admin role.
type AdminStatusResponse struct {
	IsAdmin bool `json:"isAdmin"`
}

// CheckAdmin godoc
// @Summary      Check admin status
// @Description  Reports whether the caller's own account has the admin role
// @Tags         Users
// @Produce      json
// @Security     BearerAuth
// @Param        email path string true "Account email"
// @Success      200 {object} util.APIResponse{data=AdminStatusResponse} "Admin status"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Email does not match the authenticated identity"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /user/admin/{email} [get]
func CheckAdmin(c *gin.Context) {
	claimEmail, ok := getClaimEmailOrRespond(c)
	if !ok {
		return
	}

	email := c.Param("email")
	if email != claimEmail {
		util.LogForbiddenAccess(claimEmail, c.ClientIP(), "queried admin status of another account")
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

	role, err := util.GetUserRole(db, email)
	if err != nil && err != gorm.ErrRecordNotFound {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to resolve role", Err: err})
		return
	}

	util.CallSuccessOK(c, util.APISuccessParams{
		Msg:  "Admin status",
		Data: AdminStatusResponse{IsAdmin: role == model.RoleAdmin},
	})
}

// PromoteToAdmin godoc
// @Summary      Promote an account to admin
// @Description  Sets the target account's role to admin. Upsert semantics: a missing id creates the role record instead of failing.
// @Tags         Users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Target user ID"
// @Success      200 {object} util.APIResponse "Account promoted"
// @Failure      400 {object} util.APIResponse "Malformed id"
// @Failure      401 {object} util.APIResponse "Unauthorized"
// @Failure      403 {object} util.APIResponse "Admin role required"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /user/admin/{id} [put]
func PromoteToAdmin(c *gin.Context) {
	actorEmail, ok := getClaimEmailOrRespond(c)
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

	var target model.User
	err := db.First(&target, id).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		// Upsert: promoting an id with no account row creates one. The row
		// carries no email yet, so it cannot trip the unique email index.
		target = model.User{Role: model.RoleAdmin}
		target.ID = id
		if err := db.Create(&target).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to create admin record", Err: err})
			return
		}
	case err != nil:
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to load target user", Err: err})
		return
	default:
		if err := db.Model(&target).Update("role", model.RoleAdmin).Error; err != nil {
			util.CallServerError(c, util.APIErrorParams{Msg: "Failed to update role", Err: err})
			return
		}
	}

	if target.Email != nil {
		if err := util.InvalidateUserRole(*target.Email); err != nil {
			// Stale cache entries expire on their own; just record it.
			util.LogAuditEvent(util.AuditEvent{
				EventType: util.EventRoleChanged,
				Email:     *target.Email,
				Message:   fmt.Sprintf("Failed to invalidate role cache: %v", err),
			})
		}
	}

	util.LogRoleChanged(actorEmail, fmt.Sprintf("%d", id), model.RoleAdmin, c.ClientIP())
	util.CallSuccessOK(c, util.APISuccessParams{Msg: "Account promoted to admin", Data: target})
}
