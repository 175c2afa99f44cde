package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"functionallab/coach-os/internal/service"
)

// Services holds everything the routes dispatch to. Auth may be nil when
// authentication is disabled.
type Services struct {
	Auth      service.AuthService
	Workouts  service.WorkoutService
	History   service.HistoryService
	Cycles    service.CycleService
	Plans     service.PlanService
	Inventory service.InventoryService
	Assistant service.AssistantService
	Transfer  service.TransferService
}

func SetupRoutes(router *gin.Engine, svc Services) {
	workoutHandler := NewWorkoutHandler(svc.Workouts, svc.History)
	cycleHandler := NewCycleHandler(svc.Cycles)
	planHandler := NewPlanHandler(svc.Plans)
	inventoryHandler := NewInventoryHandler(svc.Inventory)
	assistantHandler := NewAssistantHandler(svc.Assistant)
	transferHandler := NewTransferHandler(svc.Transfer)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")

	protected := apiV1.Group("")
	if svc.Auth != nil {
		authHandler := NewAuthHandler(svc.Auth)
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
		}
		protected.Use(AuthMiddleware(svc.Auth.GetJWTSecret()))
		protected.GET("/me", authHandler.Me)
	}

	{
		// --- Workout Routes ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/generate", workoutHandler.GenerateWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.GET("/status", workoutHandler.GetStatus)
			workoutGroup.GET("/calendar", workoutHandler.GetCalendar)
			workoutGroup.GET("/:id", workoutHandler.GetWorkout)
			workoutGroup.PUT("/:id", workoutHandler.UpdateWorkout)
			workoutGroup.DELETE("/:id", workoutHandler.DeleteWorkout)
		}

		// --- Cycle Routes ---
		cycleGroup := protected.Group("/cycle")
		{
			cycleGroup.GET("", cycleHandler.GetCycle)
			cycleGroup.POST("", cycleHandler.CreateCycle)
			cycleGroup.POST("/advance", cycleHandler.AdvanceWeek)
			cycleGroup.POST("/retreat", cycleHandler.RetreatWeek)
			cycleGroup.DELETE("", cycleHandler.CloseCycle)
		}

		// --- Annual Plan Routes ---
		planGroup := protected.Group("/plan")
		{
			planGroup.GET("", planHandler.GetPlan)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.PATCH("/phases/:index", planHandler.UpdatePhase)
			planGroup.DELETE("", planHandler.DeletePlan)
		}

		// --- Inventory Routes ---
		inventoryGroup := protected.Group("/inventory")
		{
			inventoryGroup.GET("/equipment", inventoryHandler.ListEquipment)
			inventoryGroup.POST("/equipment", inventoryHandler.CreateEquipment)
			inventoryGroup.DELETE("/equipment/:id", inventoryHandler.DeleteEquipment)
			inventoryGroup.GET("/benchmarks", inventoryHandler.ListBenchmarks)
			inventoryGroup.POST("/benchmarks", inventoryHandler.CreateBenchmark)
			inventoryGroup.DELETE("/benchmarks/:id", inventoryHandler.DeleteBenchmark)
			inventoryGroup.GET("/report", inventoryHandler.GetReport)
		}

		protected.POST("/chat", assistantHandler.Chat)

		// --- Transfer Routes ---
		transferGroup := protected.Group("/transfer")
		{
			transferGroup.GET("/export", transferHandler.Export)
			transferGroup.POST("/import", transferHandler.Import)
			transferGroup.POST("/backup", transferHandler.Backup)
			transferGroup.DELETE("/all", transferHandler.ClearAll)
		}
	}
}
