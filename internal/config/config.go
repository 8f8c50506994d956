package config

import "time"

// Duration accepts "5s"-style strings from YAML and the environment.
type Duration struct {
	time.Duration
}

type HTTPConfig struct {
	Addr              string   `yaml:"addr" env:"ADDR"`
	ReadHeaderTimeout Duration `yaml:"read_header_timeout" env:"READ_HEADER_TIMEOUT"`
	IdleTimeout       Duration `yaml:"idle_timeout" env:"IDLE_TIMEOUT"`
	ShutdownTimeout   Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	MaxRequestBytes   int64    `yaml:"max_request_bytes" env:"MAX_REQUEST_BYTES"`
	AllowedOrigins    []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type ModelConfig struct {
	// Provider is "gemini" for the hosted API or "mock" for deterministic offline output.
	Provider string `yaml:"provider" env:"PROVIDER"`
	APIKey   string `yaml:"api_key" env:"API_KEY"`

	TextModel   string `yaml:"text_model" env:"TEXT_MODEL"`
	ImageModel  string `yaml:"image_model" env:"IMAGE_MODEL"`
	SpeechModel string `yaml:"speech_model" env:"SPEECH_MODEL"`

	Timeout Duration `yaml:"timeout" env:"TIMEOUT"`
}

type SpeechConfig struct {
	DefaultVoice string   `yaml:"default_voice" env:"DEFAULT_VOICE"`
	Voices       []string `yaml:"voices" env:"VOICES" envSeparator:","`
	SampleRate   int      `yaml:"sample_rate" env:"SAMPLE_RATE"`
	Channels     int      `yaml:"channels" env:"CHANNELS"`
	MinSpeakers  int      `yaml:"min_speakers" env:"MIN_SPEAKERS"`
	MaxSpeakers  int      `yaml:"max_speakers" env:"MAX_SPEAKERS"`
}

type FlowsConfig struct {
	DefaultLanguage string `yaml:"default_language" env:"DEFAULT_LANGUAGE"`

	// PlaceholderMode is "url" (return PlaceholderImageURL) or "render" (draw a PNG data URI).
	PlaceholderMode     string `yaml:"placeholder_mode" env:"PLACEHOLDER_MODE"`
	PlaceholderImageURL string `yaml:"placeholder_image_url" env:"PLACEHOLDER_IMAGE_URL"`

	Speech SpeechConfig `yaml:"speech" envPrefix:"SPEECH_"`
}

type CacheConfig struct {
	RedisAddr     string   `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string   `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int      `yaml:"redis_db" env:"REDIS_DB"`
	TTL           Duration `yaml:"ttl" env:"TTL"`
}

type GamesConfig struct {
	SessionTTL  Duration `yaml:"session_ttl" env:"SESSION_TTL"`
	MaxSessions int      `yaml:"max_sessions" env:"MAX_SESSIONS"`
}

type AskLaterConfig struct {
	MaxQuestions int `yaml:"max_questions" env:"MAX_QUESTIONS"`
}

type ObservabilityConfig struct {
	ServiceName    string  `yaml:"service_name" env:"SERVICE_NAME"`
	Version        string  `yaml:"version" env:"VERSION"`
	OtelEnabled    bool    `yaml:"otel_enabled" env:"OTEL_ENABLED"`
	OtelEndpoint   string  `yaml:"otel_endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	OtelInsecure   bool    `yaml:"otel_insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
	OtelSampleRate float64 `yaml:"otel_sample_ratio" env:"OTEL_SAMPLER_RATIO"`
	MetricsEnabled bool    `yaml:"metrics_enabled" env:"METRICS_ENABLED"`
}

type Config struct {
	Env           string              `yaml:"env" env:"LOG_MODE"`
	HTTP          HTTPConfig          `yaml:"http" envPrefix:"HTTP_"`
	Model         ModelConfig         `yaml:"model" envPrefix:"MODEL_"`
	Flows         FlowsConfig         `yaml:"flows" envPrefix:"FLOWS_"`
	Cache         CacheConfig         `yaml:"cache" envPrefix:"CACHE_"`
	Games         GamesConfig         `yaml:"games" envPrefix:"GAMES_"`
	AskLater      AskLaterConfig      `yaml:"ask_later" envPrefix:"ASK_LATER_"`
	Observability ObservabilityConfig `yaml:"observability"`
}
