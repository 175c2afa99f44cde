package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/service"
)

// CycleHandler manages the active training cycle.
type CycleHandler struct {
	cycleService service.CycleService
}

func NewCycleHandler(cycleService service.CycleService) *CycleHandler {
	return &CycleHandler{cycleService: cycleService}
}

// CreateCycleRequest defines the expected JSON for starting a cycle.
type CreateCycleRequest struct {
	Name           string `json:"name" binding:"required"`
	Goal           string `json:"goal" binding:"required"`
	TotalWeeks     int    `json:"totalWeeks" binding:"omitempty,min=1,max=52"` // defaults to 4
	MacroPhaseLink string `json:"macroPhaseLink"`
}

func (h *CycleHandler) GetCycle(c *gin.Context) {
	cycle := h.cycleService.Active()
	if cycle == nil {
		respondServiceError(c, service.ErrNoActiveCycle)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

// CreateCycle godoc
// @Summary Start a training cycle
// @Description Replaces any active cycle with a new one at week 1.
// @Tags Cycle
// @Accept json
// @Produce json
// @Param cycle body CreateCycleRequest true "Cycle details"
// @Success 201 {object} domain.TrainingCycle
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /cycle [post]
func (h *CycleHandler) CreateCycle(c *gin.Context) {
	var req CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	cycle, err := h.cycleService.Create(c.Request.Context(), service.CreateCycleInput{
		Name:           req.Name,
		Goal:           req.Goal,
		TotalWeeks:     req.TotalWeeks,
		MacroPhaseLink: req.MacroPhaseLink,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cycle)
}

func (h *CycleHandler) AdvanceWeek(c *gin.Context) {
	cycle, err := h.cycleService.AdvanceWeek(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

func (h *CycleHandler) RetreatWeek(c *gin.Context) {
	cycle, err := h.cycleService.RetreatWeek(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, cycle)
}

// CloseCycle ends the active cycle. Requires ?confirm=true.
func (h *CycleHandler) CloseCycle(c *gin.Context) {
	if err := h.cycleService.Close(c.Request.Context(), confirmed(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
