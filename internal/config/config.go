package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	GenAPIKey  string
	GenBaseURL string
	GenModel   string
	PromptPath string

	RawStatsPath   string
	CleanStatsPath string
	NotesDir       string

	UploadBatchSize    int
	UploadResumeOffset int
	UploadBatchDelay   time.Duration
	EnrichLimit        int

	ServerPort string
	LogLevel   string
}

func Load(logger zerolog.Logger) (*Config, error) {
	// .env.local takes precedence over .env, matching the deployment layout.
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			logger.Debug().Msg("no .env file found, using environment variables or defaults")
		}
	}

	cfg := &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", "poker"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		GenAPIKey:  getEnv("OPENAI_API_KEY", ""),
		GenBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		GenModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		PromptPath: getEnv("PROMPT_PATH", "prompts/player_notes_summary_prompt.txt"),

		RawStatsPath:   getEnv("RAW_STATS_PATH", "data/player_stats.csv"),
		CleanStatsPath: getEnv("CLEAN_STATS_PATH", "data/cleaned_player_stats.csv"),
		NotesDir:       getEnv("NOTES_DIR", "data/player_notes"),

		UploadBatchSize:    getEnvInt("UPLOAD_BATCH_SIZE", 500),
		UploadResumeOffset: getEnvInt("UPLOAD_RESUME_OFFSET", 0),
		UploadBatchDelay:   getEnvDuration("UPLOAD_BATCH_DELAY", 500*time.Millisecond),
		EnrichLimit:        getEnvInt("ENRICH_LIMIT", 10),

		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
	}

	logger.Info().
		Str("db_host", cfg.DBHost).
		Str("db_name", cfg.DBName).
		Str("raw_stats_path", cfg.RawStatsPath).
		Str("clean_stats_path", cfg.CleanStatsPath).
		Str("notes_dir", cfg.NotesDir).
		Int("upload_batch_size", cfg.UploadBatchSize).
		Int("upload_resume_offset", cfg.UploadResumeOffset).
		Dur("upload_batch_delay", cfg.UploadBatchDelay).
		Int("enrich_limit", cfg.EnrichLimit).
		Str("server_port", cfg.ServerPort).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

var Module = fx.Provide(Load)
