// Package resp renders the {success, ...} envelope every endpoint returns.
package resp

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func OK(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusOK, payload)
}

func Created(c *gin.Context, payload gin.H) {
	JSON(c, http.StatusCreated, payload)
}

// JSON writes payload with success=true merged in.
func JSON(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Fail(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"success": false, "message": msg})
}

func BadRequest(c *gin.Context, msg string) {
	Fail(c, http.StatusBadRequest, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Fail(c, http.StatusForbidden, msg)
}

func NotFound(c *gin.Context, msg string) {
	Fail(c, http.StatusNotFound, msg)
}

// ServerError surfaces the underlying error message next to msg.
func ServerError(c *gin.Context, msg string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": msg, "error": err.Error()})
}
