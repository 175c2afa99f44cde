package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/service"
)

// WorkoutHandler serves generation and the session history.
type WorkoutHandler struct {
	workoutService service.WorkoutService
	historyService service.HistoryService
}

func NewWorkoutHandler(workoutService service.WorkoutService, historyService service.HistoryService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService, historyService: historyService}
}

// --- DTOs ---

// GenerateWorkoutRequest lists every recognized generation option.
type GenerateWorkoutRequest struct {
	ClassType domain.ClassType `json:"classType" binding:"required"`
	Focus     string           `json:"focus"`
	Date      string           `json:"date"` // YYYY-MM-DD, defaults to today
}

type UpdateWorkoutRequest struct {
	Content string `json:"content" binding:"required"`
}

// CalendarResponse groups sessions by day of month.
type CalendarResponse struct {
	Year  int                      `json:"year"`
	Month int                      `json:"month"`
	Days  map[int][]domain.Workout `json:"days"`
}

// --- Handler Methods ---

// GenerateWorkout godoc
// @Summary Generate a workout
// @Description Builds the context bundle, calls the generator and records the result.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param request body GenerateWorkoutRequest true "Generation options"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Invalid class type or date"
// @Failure 409 {object} gin.H "A generation is already running"
// @Failure 429 {object} gin.H "Generator quota exhausted"
// @Failure 502 {object} gin.H "Generator rejected credentials"
// @Failure 503 {object} gin.H "Generator unreachable"
// @Router /workouts/generate [post]
func (h *WorkoutHandler) GenerateWorkout(c *gin.Context) {
	var req GenerateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	w, err := h.workoutService.RequestWorkout(c.Request.Context(), service.WorkoutRequest{
		ClassType: req.ClassType,
		Focus:     req.Focus,
		Date:      req.Date,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, w)
}

// ListWorkouts returns the history, newest first. ?limit= bounds the result.
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			abortWithError(c, http.StatusBadRequest, "Invalid limit")
			return
		}
		c.JSON(http.StatusOK, h.historyService.MostRecent(limit))
		return
	}
	c.JSON(http.StatusOK, h.historyService.List())
}

func (h *WorkoutHandler) GetStatus(c *gin.Context) {
	c.JSON(http.StatusOK, h.workoutService.Status())
}

// GetCalendar returns the sessions of ?year=&month=, defaulting to the current month.
func (h *WorkoutHandler) GetCalendar(c *gin.Context) {
	var (
		year, month int
		err         error
	)
	if raw := c.Query("year"); raw != "" {
		if year, err = strconv.Atoi(raw); err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid year")
			return
		}
	}
	if raw := c.Query("month"); raw != "" {
		if month, err = strconv.Atoi(raw); err != nil || month < 1 || month > 12 {
			abortWithError(c, http.StatusBadRequest, "Invalid month (1-12)")
			return
		}
	}

	cal := h.historyService.Calendar(year, time.Month(month))
	c.JSON(http.StatusOK, CalendarResponse{
		Year:  cal.Year,
		Month: int(cal.Month),
		Days:  cal.Days,
	})
}

func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	w, err := h.historyService.Get(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// UpdateWorkout replaces the session text and stamps lastEditedAt.
func (h *WorkoutHandler) UpdateWorkout(c *gin.Context) {
	var req UpdateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	w, err := h.historyService.Update(c.Request.Context(), c.Param("id"), req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, w)
}

// DeleteWorkout removes a session. Requires ?confirm=true.
func (h *WorkoutHandler) DeleteWorkout(c *gin.Context) {
	if err := h.historyService.Delete(c.Request.Context(), c.Param("id"), confirmed(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
