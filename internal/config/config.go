package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Load reads the .env file specified by LLMKGRAPH_ENV (or .env by
// default), then loads the corresponding .secret file if it exists.
// All config is flat env vars read via os.Getenv after loading.
func Load() error {
	envFile := os.Getenv("LLMKGRAPH_ENV")
	if envFile == "" {
		envFile = ".env"
	}

	// Load main env file (ignore error if file doesn't exist)
	_ = godotenv.Load(envFile)

	// Load secret sidecar if it exists
	_ = godotenv.Load(envFile + ".secret")

	return nil
}

func ServerPort() int {
	port, err := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if err != nil {
		return 8080
	}
	return port
}

func ServerAddr() string {
	return fmt.Sprintf(":%d", ServerPort())
}

func DatabaseURL() string {
	return os.Getenv("DATABASE_URL")
}

func OpenAIAPIKey() string {
	return os.Getenv("OPENAI_API_KEY")
}

func MistralAPIKey() string {
	return os.Getenv("MISTRAL_API_KEY")
}

// ExtractionProvider returns the configured relation-extraction provider.
// Defaults to "openai" if not set.
// Valid values: openai, mistral, mock
func ExtractionProvider() string {
	p := os.Getenv("EXTRACTION_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

// ExtractionAPIKey returns the API key for the configured extraction provider.
func ExtractionAPIKey() string {
	switch ExtractionProvider() {
	case "mistral":
		return MistralAPIKey()
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// EmbeddingProvider returns the configured embedding provider.
// Defaults to "openai" if not set.
// Valid values: openai, mock
func EmbeddingProvider() string {
	p := os.Getenv("EMBEDDING_PROVIDER")
	if p == "" {
		return "openai"
	}
	return p
}

// EmbeddingAPIKey returns the API key for the configured embedding provider.
func EmbeddingAPIKey() string {
	switch EmbeddingProvider() {
	case "mock":
		return ""
	default:
		return OpenAIAPIKey()
	}
}

// TermExtractorProvider returns the configured term extractor.
// Defaults to "service" when NLP_SERVICE_URL is set, "heuristic" otherwise.
func TermExtractorProvider() string {
	p := os.Getenv("TERM_EXTRACTOR_PROVIDER")
	if p != "" {
		return p
	}
	if NLPServiceURL() != "" {
		return "service"
	}
	return "heuristic"
}

func NLPServiceURL() string {
	return os.Getenv("NLP_SERVICE_URL")
}

func ReasonerURL() string {
	return os.Getenv("REASONER_URL")
}

// SearchTimeout returns the per-call timeout applied to each external
// search or fetch. Defaults to 5s.
func SearchTimeout() time.Duration {
	ms, err := strconv.Atoi(os.Getenv("SEARCH_TIMEOUT_MS"))
	if err != nil || ms <= 0 {
		return 5 * time.Second
	}
	return time.Duration(ms) * time.Millisecond
}

// TopKPerTerm returns how many entities each term search requests.
// Defaults to 5.
func TopKPerTerm() int {
	k, err := strconv.Atoi(os.Getenv("TOP_K_PER_TERM"))
	if err != nil || k <= 0 {
		return 5
	}
	return k
}

// MaxEntities returns the candidate cap for context assembly.
// Defaults to 10.
func MaxEntities() int {
	n, err := strconv.Atoi(os.Getenv("MAX_ENTITIES"))
	if err != nil || n <= 0 {
		return 10
	}
	return n
}

// MaxRelationsPerEntity returns the per-entity relation bucket cap.
// Defaults to 3.
func MaxRelationsPerEntity() int {
	n, err := strconv.Atoi(os.Getenv("MAX_RELATIONS_PER_ENTITY"))
	if err != nil || n <= 0 {
		return 3
	}
	return n
}

// MaxContextChars returns the context character budget. Defaults to 4000.
func MaxContextChars() int {
	n, err := strconv.Atoi(os.Getenv("MAX_CONTEXT_CHARS"))
	if err != nil || n <= 0 {
		return 4000
	}
	return n
}

// PerEntityRelationLimit bounds each directional relation fetch in the
// individual expansion pass. Defaults to 50.
func PerEntityRelationLimit() int {
	n, err := strconv.Atoi(os.Getenv("PER_ENTITY_RELATION_LIMIT"))
	if err != nil || n <= 0 {
		return 50
	}
	return n
}

// RateLimitRPS returns requests per second limit.
// Defaults to 100 if not set.
func RateLimitRPS() float64 {
	rps, err := strconv.ParseFloat(os.Getenv("RATE_LIMIT_RPS"), 64)
	if err != nil || rps <= 0 {
		return 100
	}
	return rps
}

// RateLimitBurst returns the burst size for rate limiting.
// Defaults to 20 if not set.
func RateLimitBurst() int {
	burst, err := strconv.Atoi(os.Getenv("RATE_LIMIT_BURST"))
	if err != nil || burst <= 0 {
		return 20
	}
	return burst
}

// LogLevel returns the log level (debug, info, warn, error).
// Defaults to "info" if not set.
func LogLevel() string {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return "info"
	}
	return level
}
