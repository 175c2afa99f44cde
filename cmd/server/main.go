package main

import (
	"os"
)

// @title Coach OS API
// @version 1.0
// @description Workout generation, history, training cycles and annual planning for a functional training studio.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
