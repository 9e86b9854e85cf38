package endpoint

import (
	"fmt"
	"strconv"

	"github.com/NabinIslam/docport-server/middleware"
	"github.com/NabinIslam/docport-server/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bindJSONOrRespond(c *gin.Context, dst interface{}, msg string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.CallUserError(c, util.APIErrorParams{Msg: msg, Err: err})
		return false
	}
	return true
}

func getDBOrRespond(c *gin.Context) (*gorm.DB, bool) {
	db := middleware.GetDB(c)
	if db == nil {
		util.CallServerError(c, util.APIErrorParams{Msg: "Database connection not available", Err: fmt.Errorf("db is nil")})
		return nil, false
	}
	return db, true
}

func getClaimEmailOrRespond(c *gin.Context) (string, bool) {
	email, ok := middleware.GetClaimEmail(c)
	if !ok {
		util.CallUserNotAuthenticated(c, util.APIErrorParams{
			Msg: "Unauthorized access",
			Err: fmt.Errorf("no authenticated identity"),
		})
		return "", false
	}
	return email, true
}

// parseIDParam parses the :id path parameter as an unsigned integer,
// rejecting malformed client-supplied identifiers before they reach a query.
func parseIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		util.CallUserError(c, util.APIErrorParams{
			Msg: "Invalid id parameter",
			Err: fmt.Errorf("id must be a positive integer"),
		})
		return 0, false
	}
	return uint(id), true
}
