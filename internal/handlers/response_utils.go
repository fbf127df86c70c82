package handlers

import (
	"log"

	"github.com/gin-gonic/gin"

	"titanic-service/internal/models"
)

// RespondWithError sends a standardized JSON error response and logs it with
// the request id.
func RespondWithError(c *gin.Context, httpStatus int, appErrorCode string, message string, details interface{}) {
	log.Printf("Error response: request_id=%s status=%d code=%s message=%s details=%v",
		c.GetString(RequestIDKey), httpStatus, appErrorCode, message, details)

	c.JSON(httpStatus, models.APIError{
		Code:    appErrorCode,
		Message: message,
		Details: details,
	})
}

// RespondWithSuccess sends a JSON body, or only the status when data is nil.
func RespondWithSuccess(c *gin.Context, httpStatus int, data interface{}) {
	if data != nil {
		c.JSON(httpStatus, data)
	} else {
		c.Status(httpStatus)
	}
}
