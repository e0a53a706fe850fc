package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}
	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if err := c.validateGeneration(); err != nil {
		return fmt.Errorf("generation: %w", err)
	}

	if c.Breaker.Enabled && c.Breaker.MaxFailures == 0 {
		return fmt.Errorf("breaker.max_failures must be > 0 when the breaker is enabled")
	}

	if c.Session.Secret != "" && len(c.Session.Secret) < 32 {
		return fmt.Errorf("session.secret must be at least 32 characters (got %d)", len(c.Session.Secret))
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session.ttl must be > 0 (got %v)", c.Session.TTL)
	}
	if c.Session.MaxSessions <= 0 {
		return fmt.Errorf("session.max_sessions must be > 0 (got %d)", c.Session.MaxSessions)
	}

	if c.RateLimit.RequestsPerMinute < 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be >= 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}

	return nil
}

func (c *Config) validateGeneration() error {
	if c.Generation.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be >= 0 (got %v)", c.Generation.RequestTimeout)
	}

	switch c.Generation.Provider {
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("gemini.api_key is required for provider %q", ProviderGemini)
		}
		return requireModels(c.Gemini.TextModel, c.Gemini.SpeechModel)
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required for provider %q", ProviderOpenAI)
		}
		return requireModels(c.OpenAI.TextModel, c.OpenAI.SpeechModel)
	case ProviderStub:
		return nil
	default:
		return fmt.Errorf("unknown provider %q (want gemini, openai or stub)", c.Generation.Provider)
	}
}

func requireModels(text, speech string) error {
	if text == "" {
		return fmt.Errorf("text model is required")
	}
	if speech == "" {
		return fmt.Errorf("speech model is required")
	}
	return nil
}
