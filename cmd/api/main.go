package main

import (
	"fmt"
	"os"

	"project_billing/internal/adapter/http/routes"
	"project_billing/internal/infrastructure/config"
	"project_billing/internal/infrastructure/logger"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// @title           Project Billing API
// @version         1.0
// @description     Invoice generation, payments and project financial reconciliation.

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log)
	defer func() { _ = log.Sync() }()

	if err := routes.Run(cfg, log); err != nil {
		log.Error("application stopped", zap.Error(err))
		os.Exit(1)
	}
}
