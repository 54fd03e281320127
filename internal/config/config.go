package config

import "os"

// Config holds all runtime settings, sourced from the environment
type Config struct {
	MongoURI  string
	RedisAddr string
	HTTPPort  string

	// BackendBaseURL is the exam persistence REST API
	BackendBaseURL string

	// Media host collaborator
	MediaUploadURL string
	MediaPreset    string

	AdminUsername string
	AdminPassword string
	JWTSecret     string
}

// Load reads configuration from the environment with local defaults
func Load() *Config {
	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		BackendBaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api"),
		MediaUploadURL: getEnv("MEDIA_UPLOAD_URL", "https://media.example.com/v1/upload"),
		MediaPreset:    getEnv("MEDIA_UPLOAD_PRESET", "examforge_unsigned"),
		AdminUsername:  getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "password123"),
		JWTSecret:      getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
