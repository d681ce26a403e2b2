// Package httpapi exposes the coaching use cases over HTTP with gin.
package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/fardannozami/coaching-gateway/internal/app/usecase"
	"github.com/fardannozami/coaching-gateway/internal/domain"
	"github.com/fardannozami/coaching-gateway/internal/logging"
)

type Usecases struct {
	AssignWorkout   *usecase.AssignWorkoutUsecase
	CompleteWorkout *usecase.CompleteWorkoutUsecase
	SendMessage     *usecase.SendMessageUsecase
	GetMessages     *usecase.GetMessagesUsecase
	ListWorkouts    *usecase.ListWorkoutsUsecase
	GetProgress     *usecase.GetProgressUsecase
	GetLeaderboard  *usecase.GetLeaderboardUsecase
}

type Handler struct {
	uc  Usecases
	log zerolog.Logger
}

func NewHandler(uc Usecases, log zerolog.Logger) *Handler {
	return &Handler{uc: uc, log: log}
}

// POST /assign-workout
func (h *Handler) AssignWorkout(c *gin.Context) {
	var in usecase.AssignWorkoutInput
	if !bindJSON(c, &in) {
		return
	}

	if _, err := h.uc.AssignWorkout.Execute(c.Request.Context(), in); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Workout assigned successfully!"})
}

// POST /complete-workout
func (h *Handler) CompleteWorkout(c *gin.Context) {
	var in usecase.CompleteWorkoutInput
	if !bindJSON(c, &in) {
		return
	}

	res, err := h.uc.CompleteWorkout.Execute(c.Request.Context(), in)
	if err != nil {
		h.fail(c, err)
		return
	}

	if !res.WorkoutFound {
		h.log.Debug().Str("workout_id", in.WorkoutID.String()).Msg("completed workout matched no row")
	}
	if res.Badge != nil {
		h.log.Info().
			Str("trainee_id", in.TraineeID.String()).
			Str("badge", res.Badge.BadgeName).
			Msg("badge awarded")
	}
	c.JSON(http.StatusOK, gin.H{"message": "Workout completed!"})
}

// POST /send-message
func (h *Handler) SendMessage(c *gin.Context) {
	var msg domain.Message
	if !bindJSON(c, &msg) {
		return
	}

	if err := h.uc.SendMessage.Execute(c.Request.Context(), &msg); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message sent successfully!"})
}

// GET /get-messages?sender_id=&receiver_id=
func (h *Handler) GetMessages(c *gin.Context) {
	sender := domain.StringID(c.Query("sender_id"))
	receiver := domain.StringID(c.Query("receiver_id"))

	messages, err := h.uc.GetMessages.Execute(c.Request.Context(), sender, receiver)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

// GET /workouts?trainee_id=
func (h *Handler) ListWorkouts(c *gin.Context) {
	workouts, err := h.uc.ListWorkouts.Execute(c.Request.Context(), domain.StringID(c.Query("trainee_id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GET /progress/:trainee_id
func (h *Handler) GetProgress(c *gin.Context) {
	view, err := h.uc.GetProgress.Execute(c.Request.Context(), domain.StringID(c.Param("trainee_id")))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// GET /leaderboard
func (h *Handler) GetLeaderboard(c *gin.Context) {
	entries, err := h.uc.GetLeaderboard.Execute(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func bindJSON(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return false
	}
	return true
}

// fail maps use case errors to responses. Store errors are logged and
// answered with a generic 500.
func (h *Handler) fail(c *gin.Context, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, domain.ErrProgressConflict):
		c.JSON(http.StatusConflict, gin.H{"error": domain.ErrProgressConflict.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.log.Error().
			Err(err).
			Str("request_id", logging.RequestID(c.Request.Context())).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
