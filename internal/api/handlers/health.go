package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const version = "1.0.0"

func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Product API is running",
		"status":  "healthy",
		"version": version,
	})
}
