package common

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyDevelopment gin context flag enabling error details in responses
const ContextKeyDevelopment = "development"

// RespondSuccess writes {success:true, ...payload}
func RespondSuccess(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

// RespondError writes {success:false, message, error?}. The error detail is only
// included in development.
func RespondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"success": false,
		"message": message,
	}
	if err != nil && c.GetBool(ContextKeyDevelopment) {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// RespondCustomError writes the envelope for err, using its status and message when
// it is a CustomError and fallbackMessage with 500 otherwise.
func RespondCustomError(c *gin.Context, err error, fallbackMessage string) {
	if ce, ok := AsCustomError(err); ok {
		RespondError(c, ce.Status, ce.Message, err)
		return
	}
	RespondError(c, http.StatusInternalServerError, fallbackMessage, err)
}
