package config

import (
	"os"
	"strings"
)

func (c *Config) normalize() {
	c.normalizeTranslate()
}

// provider names are case-insensitive; the api key falls back to the
// provider's usual environment variable
func (c *Config) normalizeTranslate() {
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	if c.Translate.Provider == "" {
		c.Translate.Provider = defaultProvider
	}
	c.Translate.Model = strings.TrimSpace(c.Translate.Model)
	if strings.TrimSpace(c.Translate.APIKey) == "" {
		if env, ok := APIKeyEnv[c.Translate.Provider]; ok {
			c.Translate.APIKey = os.Getenv(env)
		}
	}
}

// APIKeyEnv maps each provider to the environment variable holding its key.
var APIKeyEnv = map[string]string{
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}
