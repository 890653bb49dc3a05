package middleware

import (
	"errors"
	"net"
	"net/http"
	"net/http/httputil"
	"os"
	"runtime/debug"
	"strings"

	"productapi/internal/logger"

	"github.com/gin-gonic/gin"
)

func Recovery(logger *logger.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if isBrokenConnection(recovered) {
			c.Abort()
			return
		}

		reqLogger := logger.With(RequestIDKey, c.GetString(RequestIDKey))
		if gin.IsDebugging() {
			httpRequest, _ := httputil.DumpRequest(c.Request, false)
			reqLogger.Error("Panic recovered on %s %s: %v\n%s\n%s", c.Request.Method, c.Request.URL.Path, recovered, string(httpRequest), string(debug.Stack()))
		} else {
			reqLogger.Error("Panic recovered on %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success":    false,
			"error":      "Internal server error",
			"request_id": c.GetString(RequestIDKey),
		})
	})
}

// isBrokenConnection reports whether the panic came from writing to a client
// that already went away; there is no one left to answer.
func isBrokenConnection(recovered interface{}) bool {
	err, ok := recovered.(error)
	if !ok {
		return false
	}

	var opErr *net.OpError
	if !errors.As(err, &opErr) {
		return false
	}
	var syscallErr *os.SyscallError
	if !errors.As(opErr.Err, &syscallErr) {
		return false
	}

	msg := strings.ToLower(syscallErr.Error())
	return strings.Contains(msg, "broken pipe") || strings.Contains(msg, "connection reset by peer")
}
