package daemon

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router builds the HTTP API.
func (s *Service) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("wattboard daemon recovered from panic: %v", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, apiError{Code: "INTERNAL_ERROR", Message: "internal error"})
	}))

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/v1")
	v1.GET("/status", s.handleStatus)
	v1.GET("/events", s.handleEvents)
	v1.GET("/stream", s.handleStream)
	v1.POST("/estimate", s.handleEstimate)

	sessions := v1.Group("/sessions")
	sessions.GET("", s.handleListSessions)
	sessions.POST("", s.handleCreateSession)

	one := sessions.Group("/:id")
	one.GET("", s.handleGetSession)
	one.DELETE("", s.handleDeleteSession)
	one.PUT("/size", s.handleSetSize)
	one.PUT("/household", s.handleSetHousehold)
	one.PUT("/drafts/:day", s.handleSetDraft)
	one.POST("/drafts/:day/toggle", s.handleToggle)
	one.POST("/days/:day/commit", s.handleCommit)
	one.PUT("/days/:day", s.handleSaveValue)
	one.POST("/reset", s.handleReset)
	one.GET("/metrics", s.handleMetrics)
	one.GET("/charts", s.handleCharts)

	return router
}
