// Package config provides centralized default values for the shop assistant
package config

import (
	"bufio"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		file, err := os.Open(".env")
		if err != nil {
			return
		}
		defer file.Close()

		log.Println("Loading configuration overrides from .env file...")
		scanner := bufio.NewScanner(file)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())

			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			parts := strings.SplitN(line, "=", 2)
			if len(parts) != 2 {
				continue
			}

			key := strings.TrimSpace(parts[0])
			value := strings.TrimSpace(parts[1])

			if os.Getenv(key) == "" {
				os.Setenv(key, value)
			}
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseFloat(valStr, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%g (default: %g)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	StaticDir          string
	CanonicalHost      string

	// Model Configuration
	OpenAIAPIKey      string
	OpenAIModel       string
	OpenAIMaxTokens   int
	OpenAITemperature float64
	AIRequestTimeout  time.Duration

	// Session Limits
	MaxTokensPerSession int
	MaxChatsPerSession  int
	MaxFlowsPerSession  int
	MaxCostPerChat      float64
	InputTokenCost      float64
	OutputTokenCost     float64

	// Session Lifecycle
	SessionTimeout         time.Duration
	SessionCleanupInterval time.Duration
	HistoryWindow          int
	HistoryMax             int

	// Catalog Configuration
	ProductInfoPath string

	// Email Notifications
	ResendAPIKey  string
	StoreMailFrom string
	StoreNotifyTo string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	StaticDir = getEnvString("STATIC_DIR", "web/shop")
	CanonicalHost = getEnvString("CANONICAL_HOST", "")

	// Model Configuration
	OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	OpenAIModel = getEnvString("OPENAI_MODEL", "gpt-4o-mini")
	OpenAIMaxTokens = getEnvInt("OPENAI_MAX_TOKENS", 800)
	OpenAITemperature = getEnvFloat("OPENAI_TEMPERATURE", 0.7)
	AIRequestTimeout = getEnvDuration("AI_REQUEST_TIMEOUT", 60*time.Second)

	// Session Limits
	MaxTokensPerSession = getEnvInt("MAX_TOKENS_PER_SESSION", 8000)
	MaxChatsPerSession = getEnvInt("MAX_CHATS_PER_SESSION", 3)
	MaxFlowsPerSession = getEnvInt("MAX_FLOWS_PER_SESSION", 5)
	MaxCostPerChat = getEnvFloat("MAX_COST_PER_CHAT", 0.05)
	InputTokenCost = getEnvFloat("INPUT_TOKEN_COST", 0.00015)
	OutputTokenCost = getEnvFloat("OUTPUT_TOKEN_COST", 0.0006)

	// Session Lifecycle
	SessionTimeout = time.Duration(getEnvInt("SESSION_TIMEOUT_MINUTES", 45)) * time.Minute
	SessionCleanupInterval = time.Duration(getEnvInt("SESSION_CLEANUP_INTERVAL_MINUTES", 10)) * time.Minute
	HistoryWindow = getEnvInt("HISTORY_WINDOW", 6)
	HistoryMax = getEnvInt("HISTORY_MAX", 12)

	// Catalog Configuration
	ProductInfoPath = getEnvString("PRODUCT_INFO_PATH", "product-info.json")

	// Email Notifications
	ResendAPIKey = os.Getenv("RESEND_API_KEY")
	StoreMailFrom = getEnvString("STORE_MAIL_FROM", "noreply@tennisshoppro.it")
	StoreNotifyTo = getEnvString("STORE_NOTIFY_TO", "info@tennisshoppro.it")
}
