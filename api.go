package handler

import (
	"net/http"
	"sync"

	"productapi/internal/api"
	"productapi/internal/config"
	"productapi/internal/logger"

	"github.com/gin-gonic/gin"
)

var (
	once   sync.Once
	router *gin.Engine
	appLog *logger.Logger
)

func setup() {
	cfg, err := config.Load()
	if err != nil {
		appLog = logger.New("info")
		appLog.Error("Failed to load configuration: %v", err)
		cfg = &config.Config{Env: "production"}
	}

	appLog = logger.ForEnv(cfg.Env, cfg.LogLevel)
	router = api.New(cfg, appLog, api.NewDependencies(cfg, appLog)).GetRouter()
}

// Handler is the serverless entry point. The router is built on the first
// invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(setup)
	router.ServeHTTP(w, r)
}
