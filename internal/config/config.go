package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Generation GenerationConfig `yaml:"generation"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Breaker    BreakerConfig    `yaml:"breaker"`
	Session    SessionConfig    `yaml:"session"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
	Prompts    PromptsConfig    `yaml:"prompts"`
	Log        LogConfig        `yaml:"log"`
	CORS       CORSConfig       `yaml:"cors"`
}

// Supported generation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderStub   = "stub"
)

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
// WriteTimeout defaults to 0 (none): generation calls have no deadline.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"0s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"   env:"SERVER_MAX_BODY_BYTES"   env-default:"65536"`
}

// GenerationConfig selects the generation backend.
// RequestTimeout of 0 leaves remote calls without a deadline.
type GenerationConfig struct {
	Provider       string        `yaml:"provider"        env:"GENERATION_PROVIDER"        env-default:"gemini"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"GENERATION_REQUEST_TIMEOUT" env-default:"0s"`
}

// GeminiConfig holds Google Gemini API settings.
// The API key falls back to the API_KEY variable when GEMINI_API_KEY is unset.
type GeminiConfig struct {
	APIKey      string `yaml:"api_key"      env:"GEMINI_API_KEY"`
	TextModel   string `yaml:"text_model"   env:"GEMINI_TEXT_MODEL"   env-default:"gemini-2.5-flash"`
	SpeechModel string `yaml:"speech_model" env:"GEMINI_SPEECH_MODEL" env-default:"gemini-2.5-flash-preview-tts"`
	UKVoice     string `yaml:"uk_voice"     env:"GEMINI_UK_VOICE"     env-default:"Puck"`
	USVoice     string `yaml:"us_voice"     env:"GEMINI_US_VOICE"     env-default:"Zephyr"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	APIKey      string `yaml:"api_key"      env:"OPENAI_API_KEY"`
	BaseURL     string `yaml:"base_url"     env:"OPENAI_BASE_URL"`
	TextModel   string `yaml:"text_model"   env:"OPENAI_TEXT_MODEL"   env-default:"gpt-4o-mini"`
	SpeechModel string `yaml:"speech_model" env:"OPENAI_SPEECH_MODEL" env-default:"tts-1"`
	UKVoice     string `yaml:"uk_voice"     env:"OPENAI_UK_VOICE"     env-default:"fable"`
	USVoice     string `yaml:"us_voice"     env:"OPENAI_US_VOICE"     env-default:"alloy"`
}

// BreakerConfig holds circuit breaker settings for the generation backend.
type BreakerConfig struct {
	Enabled          bool          `yaml:"enabled"            env:"BREAKER_ENABLED"            env-default:"true"`
	MaxFailures      uint32        `yaml:"max_failures"       env:"BREAKER_MAX_FAILURES"       env-default:"5"`
	OpenTimeout      time.Duration `yaml:"open_timeout"       env:"BREAKER_OPEN_TIMEOUT"       env-default:"30s"`
	HalfOpenRequests uint32        `yaml:"half_open_requests" env:"BREAKER_HALF_OPEN_REQUESTS" env-default:"1"`
}

// SessionConfig holds client session settings.
// An empty Secret makes the server generate a random one at startup.
type SessionConfig struct {
	Secret      string        `yaml:"secret"       env:"SESSION_SECRET"`
	Issuer      string        `yaml:"issuer"       env:"SESSION_ISSUER"       env-default:"langassist"`
	TTL         time.Duration `yaml:"ttl"          env:"SESSION_TTL"          env-default:"24h"`
	MaxSessions int           `yaml:"max_sessions" env:"SESSION_MAX_SESSIONS" env-default:"10000"`
}

// RateLimitConfig holds per-client rate limiting of generation endpoints.
// RequestsPerMinute of 0 disables limiting.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute" env:"RATE_LIMIT_RPM"              env-default:"30"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"    env:"RATE_LIMIT_CLEANUP_INTERVAL" env-default:"1m"`
}

// PromptsConfig points at an optional YAML file overriding the embedded prompt templates.
type PromptsConfig struct {
	Path string `yaml:"path" env:"PROMPTS_PATH"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
