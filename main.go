package main

import (
	"plansync/core/logger"
	"plansync/core/server"

	_ "plansync/docs" // Swagger docs
)

// @title PlanSync API
// @version 1.0
// @description Backend API for PlanSync - calendar management with AI activity suggestions and collaborative event planning
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@plansync.app

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:7070
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token. Example: "Bearer {token}"

func main() {
	if err := server.Run(); err != nil {
		logger.Error("run server error", err)
	}
}
