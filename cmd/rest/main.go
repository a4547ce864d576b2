package main

import (
	"context"
	"log"

	"notes-api-be/internal/bootstrap"
	"notes-api-be/internal/config"
	"notes-api-be/internal/server"
	"notes-api-be/internal/tracer"
	"notes-api-be/pkg/database"
)

func main() {
	// 0. Initialize Tracer
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.AutoMigrate(gormDB); err != nil {
		log.Panicf("Unable to migrate schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)

	if err := container.EnsureDefaultAdmin(context.Background()); err != nil {
		log.Panicf("Unable to ensure default admin: %v", err)
	}

	// 4. Start Background Services
	if err := container.AuditConsumer.Consume(context.Background()); err != nil {
		log.Printf("Background Audit Consumer Error: %v", err)
	}

	// 5. Initialize Server
	srv := server.New(cfg, container)

	// 6. Run Server
	log.Fatal(srv.Run())
}
