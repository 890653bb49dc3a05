package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"productapi/internal/apperrors"
)

// Response is the envelope every route answers with.
type Response struct {
	Success     bool        `json:"success"`
	Data        interface{} `json:"data,omitempty"`
	Error       string      `json:"error,omitempty"`
	Message     string      `json:"message,omitempty"`
	RawResponse string      `json:"raw_response,omitempty"`
}

func respondOK(c *gin.Context, status int, data interface{}, message string) {
	c.JSON(status, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// respondError writes a failure envelope. data is only set for list routes,
// which answer with an empty list on failure.
func respondError(c *gin.Context, err error, data interface{}) {
	resp := Response{
		Success: false,
		Data:    data,
		Error:   err.Error(),
	}
	if raw, ok := apperrors.RawResponse(err); ok {
		resp.RawResponse = raw
	}
	c.JSON(apperrors.HTTPStatus(err), resp)
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}
