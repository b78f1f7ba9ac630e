package main

import (
	"context"
	"errors"
	"log"

	"ai-chat-rag-be/internal/bootstrap"
	"ai-chat-rag-be/internal/config"
	"ai-chat-rag-be/internal/server"
	"ai-chat-rag-be/internal/tracer"
	"ai-chat-rag-be/pkg/database"
	"ai-chat-rag-be/pkg/index"
)

func main() {
	// 0. Initialize Tracer (no-op unless OTEL_ENABLED=true)
	shutdownTracer := tracer.InitTracer()
	defer shutdownTracer(context.Background())

	// 1. Load Configuration
	cfg := config.Load()

	// 2. Initialize Database
	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Panicf("Unable to connect to GORM DB: %v", err)
	}
	if err := database.Migrate(gormDB); err != nil {
		log.Panicf("Unable to migrate database schema: %v", err)
	}

	// 3. Bootstrap Dependencies (Container)
	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Logger.Sync()

	// 4. Prepare Semantic Index (load existing, build from source when empty)
	ctx := context.Background()
	if err := container.Index.Load(ctx); err != nil {
		var loadErr *index.LoadError
		if !errors.As(err, &loadErr) {
			log.Panicf("Unable to load semantic index: %v", err)
		}
		container.Logger.Info("index", "Empty collection, building from source", map[string]interface{}{
			"collection": cfg.Index.Collection,
			"source":     cfg.Index.SourcePath,
		})
		count, err := container.Index.Build(ctx, []string{cfg.Index.SourcePath})
		if err != nil {
			log.Panicf("Unable to build semantic index: %v", err)
		}
		container.Logger.Info("index", "Semantic index built", map[string]interface{}{
			"collection": cfg.Index.Collection,
			"chunks":     count,
		})
	} else {
		container.Logger.Info("index", "Semantic index loaded", map[string]interface{}{
			"collection": cfg.Index.Collection,
		})
	}

	// 5. Start Background Services
	// Note: In a larger app, we might use an errgroup or supervisor here
	go func() {
		log.Println("Background: Starting Consumer Service...")
		if err := container.ConsumerService.Consume(context.Background()); err != nil {
			log.Printf("Background Consumer Error: %v", err)
		}
	}()

	// 6. Initialize Server
	srv := server.New(cfg, container)

	// 7. Run Server
	log.Fatal(srv.Run())
}
