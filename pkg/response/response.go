package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/binaryhub/portal-api/pkg/errors"
)

// Envelope is the common response contract: {success, data|message}.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Count   *int64      `json:"count,omitempty"`
}

// JSON sends a success response carrying data and an optional message.
func JSON(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Envelope{Success: true, Data: data, Message: message})
}

// OK responds with HTTP 200 and data.
func OK(c *gin.Context, data interface{}) {
	JSON(c, http.StatusOK, data, "")
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}, message string) {
	JSON(c, http.StatusCreated, data, message)
}

// Message responds with HTTP 200 and a message only.
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message})
}

// Count responds with HTTP 200 and a bare counter.
func Count(c *gin.Context, count int64) {
	c.JSON(http.StatusOK, Envelope{Success: true, Count: &count})
}

// Error converts the error to the common structure with its carried status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	c.JSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}
