package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type RouterOptions struct {
	AllowedOrigins []string
	Logger         zerolog.Logger
}

func NewRouter(h *Handler, opts RouterOptions) *gin.Engine {
	r := gin.New()
	r.Use(
		RequestLogger(opts.Logger),
		gin.Recovery(),
		NewCORS(opts.AllowedOrigins).Handler(),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/assign-workout", h.AssignWorkout)
	r.POST("/complete-workout", h.CompleteWorkout)
	r.POST("/send-message", h.SendMessage)
	r.GET("/get-messages", h.GetMessages)

	r.GET("/workouts", h.ListWorkouts)
	r.GET("/progress/:trainee_id", h.GetProgress)
	r.GET("/leaderboard", h.GetLeaderboard)

	return r
}
