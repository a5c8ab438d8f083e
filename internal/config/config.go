package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Bucket       string
	SourcePrefix string // normalized to end with "/"
	TopicName    string
	NotifyEmail  string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOUseSSL    bool

	CSVSourceDir string // empty disables local CSV ingest
	LogFile      string
	LogObjectKey string
	RunInterval  time.Duration
	AWSRegion    string // empty defers to the SDK default chain
}

const (
	defaultLogFile     = "local_application_logs.log"
	defaultRunInterval = 4 * time.Hour
)

type ErrMissingRequiredEnvVar struct {
	Name string
}

func (e *ErrMissingRequiredEnvVar) Error() string {
	return fmt.Sprintf("required environment variable %q is not set", e.Name)
}

// Load reads configuration from environment variables.
// Returns an error if required variables are missing or malformed.
func Load() (*Config, error) {
	config := Config{}

	required := []struct {
		name   string
		target *string
	}{
		{"BUCKET_NAME", &config.Bucket},
		{"SOURCE_PREFIX", &config.SourcePrefix},
		{"TOPIC_NAME", &config.TopicName},
		{"NOTIFY_EMAIL", &config.NotifyEmail},
		{"MINIO_ENDPOINT", &config.MinIOEndpoint},
		{"MINIO_ACCESS_KEY", &config.MinIOAccessKey},
		{"MINIO_SECRET_KEY", &config.MinIOSecretKey},
	}
	for _, v := range required {
		*v.target = os.Getenv(v.name)
		if *v.target == "" {
			return nil, &ErrMissingRequiredEnvVar{Name: v.name}
		}
	}

	// Destination keys are built by concatenation, so the prefix must end
	// with a path separator.
	if !strings.HasSuffix(config.SourcePrefix, "/") {
		config.SourcePrefix += "/"
	}

	config.MinIOUseSSL = os.Getenv("MINIO_USE_SSL") == "true"
	config.CSVSourceDir = os.Getenv("CSV_SOURCE_DIR")
	config.AWSRegion = os.Getenv("AWS_REGION")

	config.LogFile = os.Getenv("LOG_FILE")
	if config.LogFile == "" {
		config.LogFile = defaultLogFile
	}
	config.LogObjectKey = os.Getenv("LOG_OBJECT_KEY")
	if config.LogObjectKey == "" {
		config.LogObjectKey = config.SourcePrefix + "application_logs.log"
	}

	config.RunInterval = defaultRunInterval
	if raw := os.Getenv("RUN_INTERVAL"); raw != "" {
		interval, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid RUN_INTERVAL %q: %w", raw, err)
		}
		if interval <= 0 {
			return nil, fmt.Errorf("RUN_INTERVAL must be positive, got %q", raw)
		}
		config.RunInterval = interval
	}

	return &config, nil
}
