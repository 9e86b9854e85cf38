package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/NabinIslam/docport-server/model"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// ErrBadToken is returned when a bearer token fails verification.
var ErrBadToken = errors.New("invalid token")

// AccessClaims is the payload of an issued access token.
type AccessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// ParseAccessToken verifies an HS256 token and returns its claims.
func ParseAccessToken(raw string) (*AccessClaims, error) {
	tok, err := jwt.ParseWithClaims(raw, &AccessClaims{}, func(t *jwt.Token) (interface{}, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return util.GetJWTSecretByte(), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := tok.Claims.(*AccessClaims)
	if !ok || !tok.Valid || claims.Email == "" {
		return nil, ErrBadToken
	}
	return claims, nil
}

// RequireAuth enforces a bearer credential. A missing Authorization header is
// 401; a malformed, badly signed, or expired token is 403. On success the
// verified claim email is stored in the context — handlers must take the
// caller identity from there, never from client-supplied fields.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			util.CallUserNotAuthenticated(c, util.APIErrorParams{
				Msg: "Unauthorized access",
				Err: fmt.Errorf("authorization header not provided"),
			})
			c.Abort()
			return
		}

		raw, hasScheme := strings.CutPrefix(authHeader, "Bearer ")
		if !hasScheme {
			rejectBadCredential(c)
			return
		}
		claims, err := ParseAccessToken(strings.TrimSpace(raw))
		if err != nil {
			rejectBadCredential(c)
			return
		}

		c.Set(ctxKeyClaimEmail, claims.Email)
		c.Next()
	}
}

// rejectBadCredential answers 403 for a credential that was supplied but is
// not a verifiable `Bearer <token>` header.
func rejectBadCredential(c *gin.Context) {
	util.LogAuditEvent(util.AuditEvent{
		EventType: util.EventUnauthorizedAccess,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
		Message:   "Bearer token rejected",
	})
	util.CallUserForbidden(c, util.APIErrorParams{
		Msg: "forbidden access",
		Err: ErrBadToken,
	})
	c.Abort()
}

// RequireAdmin enforces the admin role for the authenticated caller. It must
// run after RequireAuth. An account that does not exist is treated the same
// as a non-admin account.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := GetClaimEmail(c)
		if !ok {
			util.CallUserNotAuthenticated(c, util.APIErrorParams{
				Msg: "Unauthorized access",
				Err: fmt.Errorf("no authenticated identity"),
			})
			c.Abort()
			return
		}

		db := GetDB(c)
		if db == nil {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Database connection not available",
				Err: fmt.Errorf("db is nil"),
			})
			c.Abort()
			return
		}

		role, err := util.GetUserRole(db, email)
		if err != nil && err != gorm.ErrRecordNotFound {
			util.CallServerError(c, util.APIErrorParams{
				Msg: "Failed to resolve caller role",
				Err: err,
			})
			c.Abort()
			return
		}
		if role != model.RoleAdmin {
			util.LogForbiddenAccess(email, c.ClientIP(), "admin role required")
			util.CallUserForbidden(c, util.APIErrorParams{
				Msg: "forbidden access",
				Err: fmt.Errorf("admin role required"),
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
