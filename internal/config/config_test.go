package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// validEnv sets the minimum required env vars for a valid config.
func validEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")
	t.Setenv("API_KEY", "")
}

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

func chdirTemp(t *testing.T) {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	_ = os.Chdir(t.TempDir())
}

const validYAML = `
server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
  write_timeout: "0s"
  idle_timeout: "30s"
  shutdown_timeout: "5s"
  max_body_bytes: 4096

generation:
  provider: "openai"
  request_timeout: "45s"

openai:
  api_key: "sk-test"
  base_url: "http://localhost:1234/v1"
  text_model: "gpt-4o"
  speech_model: "tts-1-hd"
  uk_voice: "fable"
  us_voice: "nova"

breaker:
  enabled: true
  max_failures: 3
  open_timeout: "10s"

session:
  secret: "this-is-a-very-long-session-secret-for-testing"
  issuer: "langassist-test"
  ttl: "2h"
  max_sessions: 50

rate_limit:
  requests_per_minute: 12
  cleanup_interval: "30s"

prompts:
  path: "/etc/langassist/prompts.yaml"

log:
  level: "debug"
  format: "text"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("server.host = %q, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.WriteTimeout != 0 {
		t.Errorf("server.write_timeout = %v, want 0", cfg.Server.WriteTimeout)
	}
	if cfg.Server.MaxBodyBytes != 4096 {
		t.Errorf("server.max_body_bytes = %d, want 4096", cfg.Server.MaxBodyBytes)
	}
	if cfg.Generation.Provider != ProviderOpenAI {
		t.Errorf("generation.provider = %q, want %q", cfg.Generation.Provider, ProviderOpenAI)
	}
	if cfg.Generation.RequestTimeout != 45*time.Second {
		t.Errorf("generation.request_timeout = %v, want 45s", cfg.Generation.RequestTimeout)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:1234/v1" {
		t.Errorf("openai.base_url = %q", cfg.OpenAI.BaseURL)
	}
	if cfg.OpenAI.USVoice != "nova" {
		t.Errorf("openai.us_voice = %q, want %q", cfg.OpenAI.USVoice, "nova")
	}
	if cfg.Breaker.MaxFailures != 3 {
		t.Errorf("breaker.max_failures = %d, want 3", cfg.Breaker.MaxFailures)
	}
	if cfg.Breaker.HalfOpenRequests != 1 {
		t.Errorf("breaker.half_open_requests = %d, want 1 (default)", cfg.Breaker.HalfOpenRequests)
	}
	if cfg.Session.TTL != 2*time.Hour {
		t.Errorf("session.ttl = %v, want 2h", cfg.Session.TTL)
	}
	if cfg.Session.MaxSessions != 50 {
		t.Errorf("session.max_sessions = %d, want 50", cfg.Session.MaxSessions)
	}
	if cfg.RateLimit.RequestsPerMinute != 12 {
		t.Errorf("rate_limit.requests_per_minute = %d, want 12", cfg.RateLimit.RequestsPerMinute)
	}
	if cfg.Prompts.Path != "/etc/langassist/prompts.yaml" {
		t.Errorf("prompts.path = %q", cfg.Prompts.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "text" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "text")
	}
	// Gemini section absent: defaults apply.
	if cfg.Gemini.TextModel != "gemini-2.5-flash" {
		t.Errorf("gemini.text_model = %q, want default", cfg.Gemini.TextModel)
	}
}

func TestLoad_ENVOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("OPENAI_TEXT_MODEL", "gpt-4.1-mini")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 3000 {
		t.Errorf("server.port = %d, want 3000 (ENV override)", cfg.Server.Port)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %q, want %q (ENV override)", cfg.Log.Level, "warn")
	}
	if cfg.OpenAI.TextModel != "gpt-4.1-mini" {
		t.Errorf("openai.text_model = %q, want ENV override", cfg.OpenAI.TextModel)
	}
}

func TestLoad_NoFile_ENVOnly(t *testing.T) {
	validEnv(t)
	t.Setenv("CONFIG_PATH", "")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080 (default)", cfg.Server.Port)
	}
	if cfg.Generation.RequestTimeout != 0 {
		t.Errorf("generation.request_timeout = %v, want 0 (default)", cfg.Generation.RequestTimeout)
	}
	if cfg.Gemini.SpeechModel != "gemini-2.5-flash-preview-tts" {
		t.Errorf("gemini.speech_model = %q, want default", cfg.Gemini.SpeechModel)
	}
	if cfg.Gemini.UKVoice != "Puck" || cfg.Gemini.USVoice != "Zephyr" {
		t.Errorf("gemini voices = %q/%q, want Puck/Zephyr", cfg.Gemini.UKVoice, cfg.Gemini.USVoice)
	}
	if !cfg.Breaker.Enabled {
		t.Error("breaker.enabled = false, want true (default)")
	}
}

func TestLoad_APIKeyFallback(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "legacy-key")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Gemini.APIKey != "legacy-key" {
		t.Errorf("gemini.api_key = %q, want %q (API_KEY fallback)", cfg.Gemini.APIKey, "legacy-key")
	}
}

func TestLoad_ProviderNormalized(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GENERATION_PROVIDER", " Stub ")
	chdirTemp(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Generation.Provider != ProviderStub {
		t.Errorf("generation.provider = %q, want %q", cfg.Generation.Provider, ProviderStub)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("GENERATION_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("API_KEY", "")
	chdirTemp(t)

	if _, err := Load(); err == nil {
		t.Fatal("expected error when gemini api key is missing")
	}
}

func TestLoad_ExplicitPathNotFound(t *testing.T) {
	t.Setenv("CONFIG_PATH", "/nonexistent/config.yaml")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing explicit config path")
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, `{{{invalid yaml`)
	t.Setenv("CONFIG_PATH", path)

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_StubNeedsNoKey(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Provider = ProviderStub
	cfg.Gemini.APIKey = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownProvider(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Provider = "anthropic-local"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown provider")
	}
}

func TestValidate_ProviderMatchedExactly(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Provider = "Gemini"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for provider not normalized by Load")
	}
}

func TestValidate_OpenAIWithoutKey(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.Provider = ProviderOpenAI

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for openai provider without api key")
	}
}

func TestValidate_EmptySpeechModel(t *testing.T) {
	cfg := validConfig()
	cfg.Gemini.SpeechModel = ""

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty speech model")
	}
}

func TestValidate_NegativeRequestTimeout(t *testing.T) {
	cfg := validConfig()
	cfg.Generation.RequestTimeout = -time.Second

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative request timeout")
	}
}

func TestValidate_SessionSecretTooShort(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Secret = "short"

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for short session secret")
	}
}

func TestValidate_SessionSecretEmptyAllowed(t *testing.T) {
	cfg := validConfig()
	cfg.Session.Secret = ""

	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty session secret should be allowed, got: %v", err)
	}
}

func TestValidate_SessionTTLZero(t *testing.T) {
	cfg := validConfig()
	cfg.Session.TTL = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero session ttl")
	}
}

func TestValidate_MaxSessionsZero(t *testing.T) {
	cfg := validConfig()
	cfg.Session.MaxSessions = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for zero max sessions")
	}
}

func TestValidate_BreakerMaxFailuresZero(t *testing.T) {
	cfg := validConfig()
	cfg.Breaker.MaxFailures = 0

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for enabled breaker with zero max failures")
	}

	cfg.Breaker.Enabled = false
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled breaker should not be validated, got: %v", err)
	}
}

func TestValidate_RateLimitNegative(t *testing.T) {
	cfg := validConfig()
	cfg.RateLimit.RequestsPerMinute = -1

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative rate limit")
	}
}

func TestValidate_PortOutOfRange(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 70000

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for out-of-range port")
	}
}

// validConfig returns a Config that passes all validation checks.
func validConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			MaxBodyBytes: 65536,
		},
		Generation: GenerationConfig{Provider: ProviderGemini},
		Gemini: GeminiConfig{
			APIKey:      "key",
			TextModel:   "gemini-2.5-flash",
			SpeechModel: "gemini-2.5-flash-preview-tts",
			UKVoice:     "Puck",
			USVoice:     "Zephyr",
		},
		OpenAI: OpenAIConfig{
			TextModel:   "gpt-4o-mini",
			SpeechModel: "tts-1",
		},
		Breaker: BreakerConfig{Enabled: true, MaxFailures: 5, OpenTimeout: 30 * time.Second},
		Session: SessionConfig{
			Secret:      "this-is-a-very-long-session-secret-for-testing",
			TTL:         24 * time.Hour,
			MaxSessions: 100,
		},
		RateLimit: RateLimitConfig{RequestsPerMinute: 30, CleanupInterval: time.Minute},
	}
}

func TestLoadDotEnv_FileSetsUnsetVars(t *testing.T) {
	chdirTemp(t)
	t.Setenv("LANGASSIST_TEST_PRESET", "from-env")
	t.Cleanup(func() { _ = os.Unsetenv("LANGASSIST_TEST_DOTENV") })

	content := "LANGASSIST_TEST_DOTENV=from-file\nLANGASSIST_TEST_PRESET=from-file\n"
	if err := os.WriteFile(".env", []byte(content), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := os.Getenv("LANGASSIST_TEST_DOTENV"); got != "from-file" {
		t.Errorf("expected LANGASSIST_TEST_DOTENV=from-file, got %q", got)
	}
	if got := os.Getenv("LANGASSIST_TEST_PRESET"); got != "from-env" {
		t.Errorf("existing variable overridden: got %q", got)
	}
}

func TestLoadDotEnv_NoFile(t *testing.T) {
	chdirTemp(t)

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("missing .env should not fail: %v", err)
	}
}
