package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Storage  StorageConfig
	Pipeline PipelineConfig
	LLM      LLMConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type StorageConfig struct {
	UploadPath  string
	OutputsPath string
	JobDescPath string
	MaxFileSize int64
}

type PipelineConfig struct {
	// MinTextLength is the extractable-character threshold below which a
	// PDF is classified as scanned.
	MinTextLength int
	OCRDPI        int
	// EligibilityThreshold is the fit score at and above which a
	// candidate is Eligible.
	EligibilityThreshold int
	BatchConcurrency     int
}

type LLMConfig struct {
	ConfigPath     string
	RequestTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "resume_analyzer"),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			OutputsPath: getEnv("OUTPUTS_PATH", "./outputs"),
			JobDescPath: getEnv("JOB_DESC_PATH", "./jsons/job_description.json"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Pipeline: PipelineConfig{
			MinTextLength:        getEnvAsInt("MIN_TEXT_LENGTH", 20),
			OCRDPI:               getEnvAsInt("OCR_DPI", 300),
			EligibilityThreshold: getEnvAsInt("ELIGIBILITY_THRESHOLD", 5),
			BatchConcurrency:     getEnvAsInt("BATCH_CONCURRENCY", 3),
		},
		LLM: LLMConfig{
			ConfigPath:     getEnv("LLM_CONFIG_PATH", "./configs/llm_config.json"),
			RequestTimeout: getEnvAsDuration("LLM_REQUEST_TIMEOUT", "120s"),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
