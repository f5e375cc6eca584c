package config

import "github.com/caarlos0/env/v10"

// Config centraliza la configuración del servicio.
// LLM_API_KEY es opcional a proposito: sin credenciales el cliente queda
// no-disponible y el pipeline corre completo sobre fallback local.
type Config struct {
	HTTPPort      string `env:"HTTP_PORT" envDefault:"8080"`
	DatabaseURL   string `env:"DATABASE_URL,required"`
	LLMAPIKey     string `env:"LLM_API_KEY"`
	LLMBaseURL    string `env:"LLM_BASE_URL" envDefault:"https://api.openai.com/v1"`
	LLMModel      string `env:"LLM_MODEL" envDefault:"gpt-5.1"`
	LLMEmbedModel string `env:"LLM_EMBED_MODEL" envDefault:"text-embedding-3-small"`
	LLMTimeoutSec int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"60"`

	PipelineVersion string `env:"PIPELINE_VERSION" envDefault:"1.4.0"`
	ContentLimit    int    `env:"CONTENT_LIMIT" envDefault:"100"`

	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	JWTSecret           string `env:"JWT_SECRET"`
	JWTAccessTTLMinutes int    `env:"JWT_ACCESS_TTL_MINUTES" envDefault:"15"`

	AnalyzeRateWindowMin int `env:"ANALYZE_RATE_WINDOW_MINUTES" envDefault:"10"`
	AnalyzeRateMax       int `env:"ANALYZE_RATE_MAX" envDefault:"3"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
