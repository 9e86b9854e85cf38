package util

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Msg     string      `json:"msg"`
	Data    interface{} `json:"data"`
}

type APIErrorParams struct {
	Msg string
	Err error
}

type APISuccessParams struct {
	Msg  string
	Data interface{}
}

// Contains function is to check item whether is exist or not in a list and will return bool
func Contains(d string, dl []string) bool {
	for _, v := range dl {
		if v == d {
			return true
		}
	}
	return false
}

func errorResponse(params APIErrorParams) APIResponse {
	errMsg := ""
	if params.Err != nil {
		errMsg = params.Err.Error()
	}
	return APIResponse{
		Success: false,
		Error:   errMsg,
		Msg:     params.Msg,
		Data:    map[string]interface{}{},
	}
}

// CallErrorNotFound is for return API response not found
func CallErrorNotFound(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusNotFound, errorResponse(params))
}

// CallUserError is for return error from user side
func CallUserError(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusBadRequest, errorResponse(params))
}

// CallServerError is for return API response server error. The underlying
// error is server-side detail: it goes to the log, never into the payload.
func CallServerError(c *gin.Context, params APIErrorParams) {
	if params.Err != nil {
		log.Printf("server error: %s: %v", params.Msg, params.Err)
	}
	c.JSON(http.StatusInternalServerError, errorResponse(APIErrorParams{Msg: params.Msg}))
}

// CallUserNotAuthenticated is for return API response with status code 401 when no credential was supplied
func CallUserNotAuthenticated(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusUnauthorized, errorResponse(params))
}

// CallUserForbidden is for return API response with status code 403 when the credential is invalid or lacks the required role
func CallUserForbidden(c *gin.Context, params APIErrorParams) {
	c.JSON(http.StatusForbidden, errorResponse(params))
}

// CallSuccessOK is for return API response with status code 200, you need to specify msg, and data as function parameter
func CallSuccessOK(c *gin.Context, params APISuccessParams) {
	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Error:   "",
		Msg:     params.Msg,
		Data:    params.Data,
	})
}

// NormalizeName normalizes a name by trimming leading/trailing whitespace
// and collapsing multiple internal spaces into single spaces.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), " ")
}
