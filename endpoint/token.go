package endpoint

import (
	"fmt"
	"net/http"
	"time"

	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

const accessTokenTTL = time.Hour

// TokenResponse carries the issued access token, or an empty string when no
// account exists for the requested email.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
}

func signAccessToken(email string) (string, error) {
	claims := jwt.MapClaims{
		"email": email,
		"exp":   time.Now().Add(accessTokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(util.GetJWTSecretByte())
}

// IssueToken godoc
// @Summary      Issue an access token
// @Description  Signs a one-hour JWT for an existing account. An unknown email gets a defined empty-token response, not a server failure.
// @Tags         Authentication
// @Produce      json
// @Param        email query string true "Account email" example("patient@example.com")
// @Success      200 {object} TokenResponse "Access token"
// @Failure      400 {object} util.APIResponse "Missing email"
// @Failure      404 {object} TokenResponse "No account for this email"
// @Failure      500 {object} util.APIResponse "Server error"
// @Router       /jwt [get]
func IssueToken(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Missing email query parameter",
			Err: fmt.Errorf("email is required"),
		})
		return
	}

	db, ok := getDBOrRespond(c)
	if !ok {
		return
	}

	var user model.User
	err := db.Where("email = ?", email).First(&user).Error
	if err == gorm.ErrRecordNotFound {
		util.LogTokenDenied(email, c.ClientIP())
		c.JSON(http.StatusNotFound, TokenResponse{AccessToken: ""})
		return
	}
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Failed to look up account", Err: err})
		return
	}

	token, err := signAccessToken(email)
	if err != nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Could not generate token", Err: err})
		return
	}

	util.LogTokenIssued(email, c.ClientIP(), c.Request.UserAgent())
	c.JSON(http.StatusOK, TokenResponse{AccessToken: token})
}
