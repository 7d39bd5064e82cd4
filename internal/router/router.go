package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwan404/StudyHub/internal/handler"
	"github.com/marwan404/StudyHub/internal/middleware"
	"github.com/marwan404/StudyHub/internal/service"
)

type Handlers struct {
	Auth       *handler.AuthHandler
	Pomodoro   *handler.PomodoroHandler
	Resource   *handler.ResourceHandler
	Preference *handler.PreferenceHandler
	Stats      *handler.StatsHandler
}

func New(authService *service.AuthService, handlers Handlers, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery(), middleware.CORS(corsOrigins))

	engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := engine.Group("/api")
	auth := api.Group("/auth")
	auth.POST("/setup", handlers.Auth.Setup)
	auth.POST("/unlock", handlers.Auth.Unlock)

	protected := api.Group("")
	protected.Use(middleware.Auth(authService))

	pomodoro := protected.Group("/pomodoro")
	pomodoro.GET("/state", handlers.Pomodoro.GetState)
	pomodoro.POST("/start", handlers.Pomodoro.Start)
	pomodoro.POST("/pause", handlers.Pomodoro.Pause)
	pomodoro.POST("/reset", handlers.Pomodoro.Reset)
	pomodoro.PUT("/settings", handlers.Pomodoro.UpdateSettings)
	pomodoro.GET("/history", handlers.Pomodoro.GetHistory)
	pomodoro.GET("/events", handlers.Pomodoro.Events)

	resources := protected.Group("/resources")
	resources.GET("", handlers.Resource.List)
	resources.POST("", handlers.Resource.Create)
	resources.PUT("/order", handlers.Resource.Reorder)
	resources.POST("/describe", handlers.Resource.Describe)
	resources.PUT("/:id", handlers.Resource.Update)
	resources.DELETE("/:id", handlers.Resource.Delete)
	resources.POST("/:id/visit", handlers.Resource.Visit)

	protected.GET("/streak", handlers.Stats.GetStreak)
	protected.GET("/stats", handlers.Stats.GetStats)
	protected.GET("/preferences", handlers.Preference.Get)
	protected.PUT("/preferences", handlers.Preference.Update)

	return engine
}
