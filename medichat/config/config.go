package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	HospitalName string

	// Client side: base URL of the retrieval service the chat flow talks to.
	RAGBaseURL string

	// OpenAI-compatible API used by the RAG engine and the embeddings index.
	OpenAIAPIKey         string
	OpenAIBaseURL        string
	OpenAIModel          string
	OpenAIEmbeddingModel string

	HospitalDataPath    string
	EmbeddingsCachePath string
	BadgerPath          string
	PromptsPath         string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return Config{
		Port:         getEnv("PORT", "8000"),
		HospitalName: getEnv("HOSPITAL_NAME", "Metropolitan Advanced Medical Center"),

		RAGBaseURL: getEnv("RAG_BASE_URL", "http://localhost:8000"),

		OpenAIAPIKey:         getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIModel:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIEmbeddingModel: getEnv("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small"),

		HospitalDataPath:    getEnv("HOSPITAL_DATA_PATH", "hospital_data.txt"),
		EmbeddingsCachePath: getEnv("EMBEDDINGS_CACHE_PATH", "embeddings_cache.json"),
		BadgerPath:          getEnv("BADGER_PATH", ".medichat/store"),
		PromptsPath:         getEnv("PROMPTS_PATH", defaultPromptsPath()),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "hospital-docs"),
	}
}

// defaultPromptsPath finds the shipped properties file regardless of whether
// the server was launched from the repo root or from inside medichat/.
// Missing file is fine; prompts.Load falls back to built-in defaults.
func defaultPromptsPath() string {
	candidates := []string{
		"medichat/prompts/medichat.properties",
		"prompts/medichat.properties",
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return candidates[0]
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return fallback
}
