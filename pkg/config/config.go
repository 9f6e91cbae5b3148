package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Signaling SignalingConfig
	Interview InterviewConfig
	Speech    SpeechConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds room-token signing configuration
type JWTConfig struct {
	Secret      string
	TokenExpiry time.Duration
}

// StorageConfig holds report archive storage configuration
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// SignalingConfig holds room manager tuning
type SignalingConfig struct {
	QualityWindowSize  int
	DegradedPacketLoss float64
	CriticalPacketLoss float64
	SustainedCritical  time.Duration
	OpTimeout          time.Duration
}

// InterviewConfig holds session state machine timers
type InterviewConfig struct {
	SetupTimeout time.Duration
	ReadyTimeout time.Duration
}

// SpeechConfig holds speech synthesis and capture configuration
type SpeechConfig struct {
	SynthesizerURL  string
	SynthesizerKey  string
	AssemblyAIKey   string
	WebhookSecret   string
	TranscriptURL   string
	TranscriptToken string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  []string{getEnv("ALLOWED_ORIGINS", "http://localhost:3000")},
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "interview_orchestrator"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 5),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:      getEnv("JWT_SECRET", "change-me-in-production"),
			TokenExpiry: getEnvAsDuration("JWT_TOKEN_EXPIRY", "2h"),
		},
		Storage: StorageConfig{
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "interview-reports"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Signaling: SignalingConfig{
			QualityWindowSize:  getEnvAsInt("SIGNALING_QUALITY_WINDOW", 10),
			DegradedPacketLoss: getEnvAsFloat("SIGNALING_DEGRADED_LOSS", 0.05),
			CriticalPacketLoss: getEnvAsFloat("SIGNALING_CRITICAL_LOSS", 0.15),
			SustainedCritical:  getEnvAsDuration("SIGNALING_SUSTAINED_CRITICAL", "10s"),
			OpTimeout:          getEnvAsDuration("SIGNALING_OP_TIMEOUT", "5s"),
		},
		Interview: InterviewConfig{
			SetupTimeout: getEnvAsDuration("INTERVIEW_SETUP_TIMEOUT", "60s"),
			ReadyTimeout: getEnvAsDuration("INTERVIEW_READY_TIMEOUT", "30s"),
		},
		Speech: SpeechConfig{
			SynthesizerURL:  getEnv("SPEECH_SYNTH_URL", "http://localhost:9200"),
			SynthesizerKey:  getEnv("SPEECH_SYNTH_KEY", ""),
			AssemblyAIKey:   getEnv("ASSEMBLYAI_API_KEY", ""),
			WebhookSecret:   getEnv("CAPTURE_WEBHOOK_SECRET", ""),
			TranscriptURL:   getEnv("TRANSCRIPT_WEBHOOK_URL", "http://localhost:8080/v1/webhooks/transcript"),
			TranscriptToken: getEnv("TRANSCRIPT_WEBHOOK_TOKEN", ""),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Environment == "production" && c.JWT.Secret == "change-me-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Server.Environment == "production" && c.Speech.WebhookSecret == "" {
		return fmt.Errorf("CAPTURE_WEBHOOK_SECRET must be set in production")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

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

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
