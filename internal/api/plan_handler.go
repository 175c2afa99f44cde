package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/service"
)

// PlanHandler manages the annual plan (macrocycle).
type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

type CreatePlanRequest struct {
	Year int `json:"year"` // 0 means the current year
}

// UpdatePhaseRequest carries the fields to merge; omitted fields are kept.
type UpdatePhaseRequest struct {
	Goal      *string           `json:"goal"`
	Intensity *domain.Intensity `json:"intensity" binding:"omitempty,oneof=Low Medium High Peak"`
	Focus     *string           `json:"focus"`
}

// PlanResponse adds chart-ready intensity percentages to the plan.
type PlanResponse struct {
	*domain.AnnualPlan
	Load []int `json:"load"`
}

// MapPlanToResponse converts a domain.AnnualPlan to its DTO.
func MapPlanToResponse(plan *domain.AnnualPlan) PlanResponse {
	load := make([]int, len(plan.Phases))
	for i, ph := range plan.Phases {
		load[i] = ph.Intensity.Percent()
	}
	return PlanResponse{AnnualPlan: plan, Load: load}
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	plan := h.planService.Get()
	if plan == nil {
		respondServiceError(c, service.ErrNoAnnualPlan)
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req CreatePlanRequest
	// An empty body is allowed and means the current year.
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	plan, err := h.planService.Create(c.Request.Context(), req.Year)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, MapPlanToResponse(plan))
}

// UpdatePhase merges fields into the phase at :index (0-11).
func (h *PlanHandler) UpdatePhase(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid phase index")
		return
	}
	var req UpdatePhaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	changed, err := h.planService.UpdatePhase(c.Request.Context(), index, service.PhaseUpdate{
		Goal:      req.Goal,
		Intensity: req.Intensity,
		Focus:     req.Focus,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	plan := h.planService.Get()
	if plan == nil {
		respondServiceError(c, service.ErrNoAnnualPlan)
		return
	}
	if !changed {
		abortWithError(c, http.StatusNotFound, "Phase index out of range")
		return
	}
	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// DeletePlan removes the plan. Requires ?confirm=true.
func (h *PlanHandler) DeletePlan(c *gin.Context) {
	if err := h.planService.Delete(c.Request.Context(), confirmed(c)); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
