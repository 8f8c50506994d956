package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v9"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderMock   = "mock"

	PlaceholderURL    = "url"
	PlaceholderRender = "render"
)

func (d *Duration) UnmarshalText(b []byte) error {
	dd, err := parseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = dd
	return nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return d.UnmarshalText([]byte(raw))
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0, nil
	}
	if dd, err := time.ParseDuration(s); err == nil {
		return dd, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("duration must be a string like \"5s\" or an int of seconds: %q", s)
	}
	return time.Duration(n) * time.Second, nil
}

// Default returns the configuration used when neither a file nor the environment says otherwise.
func Default() *Config {
	return &Config{
		Env: "development",
		HTTP: HTTPConfig{
			Addr:              ":8080",
			ReadHeaderTimeout: Duration{5 * time.Second},
			IdleTimeout:       Duration{2 * time.Minute},
			ShutdownTimeout:   Duration{15 * time.Second},
			MaxRequestBytes:   20 << 20,
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost:9002",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:9002",
			},
		},
		Model: ModelConfig{
			Provider:    ProviderGemini,
			TextModel:   "gemini-2.0-flash",
			ImageModel:  "gemini-2.0-flash-preview-image-generation",
			SpeechModel: "gemini-2.5-flash-preview-tts",
			Timeout:     Duration{90 * time.Second},
		},
		Flows: FlowsConfig{
			DefaultLanguage:     "English",
			PlaceholderMode:     PlaceholderURL,
			PlaceholderImageURL: "https://placehold.co/512x288.png",
			Speech: SpeechConfig{
				DefaultVoice: "Algenib",
				Voices:       []string{"Algenib", "Achernar", "Enif", "Fomalhaut", "Hamal"},
				SampleRate:   24000,
				Channels:     1,
				MinSpeakers:  2,
				MaxSpeakers:  5,
			},
		},
		Cache: CacheConfig{
			TTL: Duration{time.Hour},
		},
		Games: GamesConfig{
			SessionTTL:  Duration{2 * time.Hour},
			MaxSessions: 1000,
		},
		AskLater: AskLaterConfig{
			MaxQuestions: 200,
		},
		Observability: ObservabilityConfig{
			ServiceName:    "sahayak",
			Version:        "dev",
			OtelSampleRate: 0.1,
		},
	}
}

// Load reads defaults, then the YAML file named by SAHAYAK_CONFIG_PATH (or ./config/config.yaml
// when present), then environment overrides, and validates the result.
func Load() (*Config, error) {
	cfg := Default()

	cfgPath := strings.TrimSpace(os.Getenv("SAHAYAK_CONFIG_PATH"))
	if cfgPath == "" {
		if wd, err := os.Getwd(); err == nil {
			p := filepath.Join(wd, "config", "config.yaml")
			if _, err := os.Stat(p); err == nil {
				cfgPath = p
			}
		}
	}
	if cfgPath != "" {
		if err := LoadFile(cfg, cfgPath); err != nil {
			return nil, err
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing env config: %w", err)
	}
	if strings.TrimSpace(cfg.Model.APIKey) == "" {
		cfg.Model.APIKey = firstEnv("GEMINI_API_KEY", "GOOGLE_API_KEY")
	}

	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile decodes a YAML file on top of cfg. Keys absent from the file keep their current values.
func LoadFile(cfg *Config, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	return nil
}

func (cfg *Config) normalize() error {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "development"
	}
	if strings.TrimSpace(cfg.HTTP.Addr) == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.HTTP.MaxRequestBytes <= 0 {
		cfg.HTTP.MaxRequestBytes = 20 << 20
	}

	m := &cfg.Model
	m.Provider = strings.ToLower(strings.TrimSpace(m.Provider))
	switch m.Provider {
	case "", ProviderGemini, "googleai":
		m.Provider = ProviderGemini
		if strings.TrimSpace(m.APIKey) == "" {
			return errors.New("model.api_key (or GEMINI_API_KEY) is required for the gemini provider")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unsupported model.provider %q", m.Provider)
	}
	for name, v := range map[string]string{"text_model": m.TextModel, "image_model": m.ImageModel, "speech_model": m.SpeechModel} {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("model.%s is required", name)
		}
	}
	if m.Timeout.Duration < 0 {
		return errors.New("model.timeout must not be negative")
	}

	f := &cfg.Flows
	if strings.TrimSpace(f.DefaultLanguage) == "" {
		f.DefaultLanguage = "English"
	}
	f.PlaceholderMode = strings.ToLower(strings.TrimSpace(f.PlaceholderMode))
	switch f.PlaceholderMode {
	case "":
		f.PlaceholderMode = PlaceholderURL
	case PlaceholderURL, PlaceholderRender:
	default:
		return fmt.Errorf("invalid flows.placeholder_mode %q", f.PlaceholderMode)
	}
	if f.PlaceholderMode == PlaceholderURL && strings.TrimSpace(f.PlaceholderImageURL) == "" {
		return errors.New("flows.placeholder_image_url is required when placeholder_mode=url")
	}

	s := &f.Speech
	if s.SampleRate <= 0 {
		return errors.New("flows.speech.sample_rate must be positive")
	}
	if s.Channels <= 0 {
		s.Channels = 1
	}
	if len(s.Voices) == 0 {
		return errors.New("flows.speech.voices must not be empty")
	}
	if strings.TrimSpace(s.DefaultVoice) == "" {
		s.DefaultVoice = s.Voices[0]
	}
	if s.MinSpeakers < 2 || s.MaxSpeakers < s.MinSpeakers || s.MaxSpeakers > len(s.Voices) {
		return fmt.Errorf("invalid speaker range [%d,%d] for %d voices", s.MinSpeakers, s.MaxSpeakers, len(s.Voices))
	}

	if cfg.Games.MaxSessions <= 0 {
		cfg.Games.MaxSessions = 1000
	}
	if cfg.Games.SessionTTL.Duration <= 0 {
		cfg.Games.SessionTTL = Duration{2 * time.Hour}
	}
	if cfg.AskLater.MaxQuestions <= 0 {
		cfg.AskLater.MaxQuestions = 200
	}

	o := &cfg.Observability
	if strings.TrimSpace(o.ServiceName) == "" {
		o.ServiceName = "sahayak"
	}
	if o.OtelSampleRate < 0 {
		o.OtelSampleRate = 0
	}
	if o.OtelSampleRate > 1 {
		o.OtelSampleRate = 1
	}
	return nil
}

func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(os.Getenv(k)); v != "" {
			return v
		}
	}
	return ""
}
