package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Ai       AIConfig
	Index    IndexConfig
	Events   EventsConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	EmbeddingProvider    string // "gemini" or "ollama"
	OllamaBaseURL        string
	OllamaEmbeddingModel string
	LLMProvider          string // "ollama" or "gemini"
	LLMModel             string // e.g. "llama3", "gemini-2.0-flash"
	GeminiAPIKey         string
}

type IndexConfig struct {
	Collection string
	SourcePath string
	ChunkSize  int
	Overlap    int
	TopK       int
}

type EventsConfig struct {
	TurnTopic string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider:    getEnv("EMBEDDING_PROVIDER", "gemini"),
			OllamaBaseURL:        getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaEmbeddingModel: getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:          getEnv("LLM_PROVIDER", "gemini"),
			LLMModel:             getEnv("LLM_MODEL", "gemini-2.0-flash"),
			GeminiAPIKey:         getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Index: IndexConfig{
			Collection: getEnv("INDEX_COLLECTION", "docs"),
			SourcePath: getEnv("INDEX_SOURCE_PATH", "./data/docs.txt"),
			ChunkSize:  getEnvAsInt("INDEX_CHUNK_SIZE", 500),
			Overlap:    getEnvAsInt("INDEX_CHUNK_OVERLAP", 50),
			TopK:       getEnvAsInt("INDEX_TOP_K", 3),
		},
		Events: EventsConfig{
			TurnTopic: getEnv("TURN_RECORDED_TOPIC_NAME", "CONVERSATION_TURN_RECORDED"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
