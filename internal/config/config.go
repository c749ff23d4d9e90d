package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Proveedores LLM. Ninguna key es obligatoria por si sola; el router
	// devuelve error si se selecciona un proveedor sin credenciales.
	OpenAIAPIKey     string `env:"OPENAI_API_KEY"`
	AnthropicAPIKey  string `env:"ANTHROPIC_API_KEY"`
	MistralAPIKey    string `env:"MISTRAL_API_KEY"`
	GroqAPIKey       string `env:"GROQ_API_KEY"`
	XAIAPIKey        string `env:"XAI_API_KEY"`
	GoogleAPIKey     string `env:"GOOGLE_API_KEY"`
	OpenRouterAPIKey string `env:"OPENROUTER_API_KEY"`

	OpenAIBaseURL     string `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	AnthropicBaseURL  string `env:"ANTHROPIC_BASE_URL" envDefault:"https://api.anthropic.com"`
	MistralBaseURL    string `env:"MISTRAL_BASE_URL" envDefault:"https://api.mistral.ai/v1"`
	GroqBaseURL       string `env:"GROQ_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	XAIBaseURL        string `env:"XAI_BASE_URL" envDefault:"https://api.x.ai/v1"`
	GoogleBaseURL     string `env:"GOOGLE_BASE_URL" envDefault:"https://generativelanguage.googleapis.com"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`

	// Referer y título que OpenRouter pide como identificación de la app.
	AppReferer string `env:"APP_REFERER" envDefault:"https://creative-scribe.app"`
	AppTitle   string `env:"APP_TITLE" envDefault:"Creative Scribe"`

	JWTSecret            string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes  int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`
	JWTRefreshTTLMinutes int    `env:"JWT_REFRESH_TTL_MINUTES" envDefault:"43200"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
