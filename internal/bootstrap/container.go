package bootstrap

import (
	"log"
	"time"

	"ai-chat-rag-be/internal/config"
	"ai-chat-rag-be/internal/controller"
	"ai-chat-rag-be/internal/pkg/logger"
	"ai-chat-rag-be/internal/repository/implementation"
	"ai-chat-rag-be/internal/service"
	"ai-chat-rag-be/pkg/embedding"
	"ai-chat-rag-be/pkg/index"
	"ai-chat-rag-be/pkg/llm/factory"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Semantic index handle, exposed so main.go can load or build it
	// before the server starts accepting queries.
	Index *index.Semantic

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Providers
	// Initialize Embedding Provider based on Config
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaEmbeddingModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaEmbeddingModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiAPIKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	// Repeated retrievals for the same question should not pay for a
	// second embedding call.
	cachedEmbedder := embedding.NewCached(embeddingProvider)

	// Initialize LLM Provider based on Config
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Ai.GeminiAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 4. Repositories
	memoryRepo := implementation.NewMemoryRepository(db)
	chunkRepo := implementation.NewChunkRepository(db)

	// 5. Semantic Index
	semanticIndex := index.NewSemantic(
		chunkRepo,
		cachedEmbedder,
		cfg.Index.Collection,
		cfg.Index.ChunkSize,
		cfg.Index.Overlap,
	)

	// 6. Services
	activityCache := gocache.New(24*time.Hour, 1*time.Hour)
	publisherService := service.NewPublisherService(cfg.Events.TurnTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, cfg.Events.TurnTopic, activityCache)

	chatService := service.NewChatService(
		semanticIndex,
		memoryRepo,
		llmProvider,
		cfg.Index.TopK,
		publisherService,
		consumerService,
	)

	// 7. Controllers
	chatController := controller.NewChatController(chatService)

	return &Container{
		ChatController:  chatController,
		ConsumerService: consumerService,
		Index:           semanticIndex,
		Logger:          sysLogger,
	}
}
