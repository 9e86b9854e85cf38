package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys used by the middleware chain.
const (
	ctxKeyDB         = "db"
	ctxKeyClaimEmail = "claim_email"
)

// CORSMiddleware configures CORS headers for incoming requests.
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, DELETE, PUT")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "X-Requested-With, Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Content-Type", "application/json")

		// For preflight requests, respond with 204 and abort further processing.
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// DatabaseMiddleware injects the shared gorm handle into the request context
// so handlers never reach for a package-level connection.
func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxKeyDB, db)
		c.Next()
	}
}

// GetDB returns the request-scoped database handle, or nil when the
// DatabaseMiddleware did not run.
func GetDB(c *gin.Context) *gorm.DB {
	v, ok := c.Get(ctxKeyDB)
	if !ok {
		return nil
	}
	db, ok := v.(*gorm.DB)
	if !ok {
		return nil
	}
	return db
}

// GetClaimEmail returns the email extracted from the verified bearer token.
// The second return value is false for unauthenticated requests.
func GetClaimEmail(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxKeyClaimEmail)
	if !ok {
		return "", false
	}
	email, ok := v.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
