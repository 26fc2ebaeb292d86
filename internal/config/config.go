package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config holds everything the service needs at startup.  The three secret
// values are required and rejected when they still carry the placeholder
// strings shipped in the example environment file; everything else has a
// working default.
type Config struct {
	// LLMAPIKey authenticates against the text-generation endpoint.
	LLMAPIKey string
	// DatabaseURL is the Postgres endpoint, e.g.
	// postgres://postgres@db.example.supabase.co:5432/postgres
	DatabaseURL string
	// DatabaseKey is the database access key; it becomes the connection
	// password when the DSN is composed.
	DatabaseKey string

	Model        string
	Temperature  float32
	MaxTokens    int
	HistoryLimit int
	Persona      string
	Listen       string

	// PromptStyle selects how the chat turn reaches the model: "chat"
	// sends the structured message sequence, "flat" folds persona,
	// profile, and history into a single completion prompt.
	PromptStyle string
}

const envPrefix = "MEDASSIST"

// exactPlaceholders are the literal placeholder values from the example
// environment file.  Values with the "your_" prefix are caught separately.
var exactPlaceholders = map[string]struct{}{
	"YOUR_LLM_API_KEY":  {},
	"YOUR_DATABASE_URL": {},
	"YOUR_DATABASE_KEY": {},
}

// Load builds a Config from defaults, an optional config.toml in the
// working directory, and MEDASSIST_-prefixed environment variables
// (highest precedence).  It fails with a single aggregated error when any
// required secret is missing or still a placeholder.
func Load() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults and env apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// MEDASSIST_LLM_API_KEY, MEDASSIST_DATABASE_URL, etc.
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		LLMAPIKey:    v.GetString("llm.api_key"),
		DatabaseURL:  v.GetString("database.url"),
		DatabaseKey:  v.GetString("database.key"),
		Model:        v.GetString("llm.model"),
		Temperature:  float32(v.GetFloat64("llm.temperature")),
		MaxTokens:    v.GetInt("llm.max_tokens"),
		HistoryLimit: v.GetInt("chat.history_limit"),
		Persona:      v.GetString("chat.persona"),
		Listen:       v.GetString("server.listen"),
		PromptStyle:  v.GetString("llm.prompt_style"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.7)
	v.SetDefault("llm.max_tokens", 1000)
	v.SetDefault("llm.prompt_style", "chat")
	v.SetDefault("chat.history_limit", 10)
	v.SetDefault("chat.persona", "standard")
	v.SetDefault("server.listen", ":8080")
}

// Validate checks the required secrets and reports every missing or
// placeholder value in one aggregated error.
func (c *Config) Validate() error {
	required := []struct {
		env, description, value string
	}{
		{"MEDASSIST_LLM_API_KEY", "LLM API key", c.LLMAPIKey},
		{"MEDASSIST_DATABASE_URL", "database endpoint URL", c.DatabaseURL},
		{"MEDASSIST_DATABASE_KEY", "database access key", c.DatabaseKey},
	}

	var missing, invalid []string
	for _, r := range required {
		switch {
		case r.value == "":
			missing = append(missing, fmt.Sprintf("%s (%s)", r.env, r.description))
		case isPlaceholder(r.value):
			invalid = append(invalid, fmt.Sprintf("%s (%s)", r.env, r.description))
		}
	}
	if len(missing) == 0 && len(invalid) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("configuration error:")
	if len(missing) > 0 {
		b.WriteString("\nmissing environment variables:")
		for _, m := range missing {
			b.WriteString("\n  - " + m)
		}
	}
	if len(invalid) > 0 {
		b.WriteString("\nplaceholder values found:")
		for _, i := range invalid {
			b.WriteString("\n  - " + i)
		}
	}
	b.WriteString("\nupdate the environment with actual values")
	return errors.New(b.String())
}

func isPlaceholder(value string) bool {
	if strings.HasPrefix(value, "your_") {
		return true
	}
	_, ok := exactPlaceholders[value]
	return ok
}

// DSN composes the Postgres connection string from the database URL and
// access key.  The key replaces any password already present in the URL.
func (c *Config) DSN() (string, error) {
	u, err := url.Parse(c.DatabaseURL)
	if err != nil {
		return "", fmt.Errorf("parse database url: %w", err)
	}
	user := "postgres"
	if u.User != nil && u.User.Username() != "" {
		user = u.User.Username()
	}
	u.User = url.UserPassword(user, c.DatabaseKey)
	return u.String(), nil
}
