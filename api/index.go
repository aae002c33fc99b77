package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"mithai-mahal/config"
	"mithai-mahal/logger"
	"mithai-mahal/models"
	"mithai-mahal/routes"

	"github.com/gin-gonic/gin"
)

var (
	router  *gin.Engine
	initErr error
	once    sync.Once
)

// initApp builds the router once per serverless instance. Connections stay
// open for the life of the instance.
func initApp() {
	once.Do(func() {
		gin.SetMode(gin.ReleaseMode)
		config.AppConfig = config.FromEnv()

		appLog := logger.New(logger.Options{
			Service: "mithai-mahal-api",
			Env:     config.AppConfig.AppEnv,
			Level:   config.AppConfig.LogLevel,
		})

		deps, _, err := routes.Bootstrap(context.Background(), appLog)
		if err != nil {
			log.Printf("Failed to initialize: %v", err)
			initErr = err
			return
		}
		router = routes.NewRouter(deps)
	})
}

// Handler is the serverless entry point.
func Handler(w http.ResponseWriter, r *http.Request) {
	initApp()
	if initErr != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(models.ErrorResponse{
			Success: false,
			Message: "Service unavailable",
			Error:   initErr.Error(),
		})
		return
	}
	router.ServeHTTP(w, r)
}
