package main

import (
	"context"
	"flag"
	"strings"

	"ai-chat-rag-be/internal/bootstrap"
	"ai-chat-rag-be/internal/config"
	"ai-chat-rag-be/pkg/database"

	"github.com/fatih/color"
)

func main() {
	var (
		sources    = flag.String("sources", "", "Comma-separated document paths (defaults to INDEX_SOURCE_PATH)")
		collection = flag.String("collection", "", "Target collection name (defaults to INDEX_COLLECTION)")
		rebuild    = flag.Bool("rebuild", false, "Drop the existing collection before indexing")
	)
	flag.Parse()

	cfg := config.Load()
	if *collection != "" {
		cfg.Index.Collection = *collection
	}

	sourcePaths := []string{cfg.Index.SourcePath}
	if *sources != "" {
		sourcePaths = strings.Split(*sources, ",")
	}

	color.Cyan("🚀 Semantic Indexer")
	color.Yellow("Collection: %s", cfg.Index.Collection)
	color.Yellow("Sources: %s", strings.Join(sourcePaths, ", "))

	gormDB, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		color.Red("Failed to connect to database: %v", err)
		return
	}
	if err := database.Migrate(gormDB); err != nil {
		color.Red("Failed to migrate schema: %v", err)
		return
	}

	container := bootstrap.NewContainer(gormDB, cfg)

	ctx := context.Background()
	var count int
	if *rebuild {
		count, err = container.Index.Rebuild(ctx, sourcePaths)
	} else {
		count, err = container.Index.Build(ctx, sourcePaths)
	}
	if err != nil {
		color.Red("Indexing failed: %v", err)
		return
	}

	color.Green("Indexed %d chunks into collection '%s'", count, cfg.Index.Collection)
}
