package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/domain"
	"functionallab/coach-os/internal/service"
)

// InventoryHandler holds the inventory service dependency.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateEquipmentRequest defines the expected JSON for adding equipment.
type CreateEquipmentRequest struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"min=0"`
}

// CreateBenchmarkRequest defines the expected JSON for adding a benchmark.
type CreateBenchmarkRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Category    domain.BenchmarkCategory `json:"category" binding:"omitempty,oneof=Girl Hero Lift Custom"`
	Description string                   `json:"description" binding:"required"`
}

// --- Equipment ---

func (h *InventoryHandler) ListEquipment(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.Equipment())
}

// CreateEquipment godoc
// @Summary Add an equipment line
// @Tags Inventory
// @Accept json
// @Produce json
// @Param equipment body CreateEquipmentRequest true "Equipment details"
// @Success 201 {object} domain.Equipment
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Router /inventory/equipment [post]
func (h *InventoryHandler) CreateEquipment(c *gin.Context) {
	var req CreateEquipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	item, err := h.inventoryService.AddEquipment(c.Request.Context(), req.Name, req.Quantity)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *InventoryHandler) DeleteEquipment(c *gin.Context) {
	if err := h.inventoryService.RemoveEquipment(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Benchmarks ---

func (h *InventoryHandler) ListBenchmarks(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.Benchmarks())
}

func (h *InventoryHandler) CreateBenchmark(c *gin.Context) {
	var req CreateBenchmarkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	bm, err := h.inventoryService.AddBenchmark(c.Request.Context(), req.Name, req.Category, req.Description)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bm)
}

func (h *InventoryHandler) DeleteBenchmark(c *gin.Context) {
	if err := h.inventoryService.RemoveBenchmark(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetReport returns equipment totals and the class-type distribution.
func (h *InventoryHandler) GetReport(c *gin.Context) {
	c.JSON(http.StatusOK, h.inventoryService.Report())
}
