package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

type ServerConfig struct {
	Port         string   `toml:"port"`
	AllowOrigins []string `toml:"allow_origins"`
}

type StorageConfig struct {
	Path string `toml:"path"`
}

type DetectionConfig struct {
	FoodModelPath    string  `toml:"food_model_path"`
	FoodLabelsPath   string  `toml:"food_labels_path"`
	GenericModelPath string  `toml:"generic_model_path"`
	Confidence       float64 `toml:"confidence"`
	SampleImage      string  `toml:"sample_image"`
}

type EmbeddingConfig struct {
	Provider      string `toml:"provider"`
	Model         string `toml:"model"`
	APIKey        string `toml:"api_key"`
	BaseURL       string `toml:"base_url"`
	ModelPath     string `toml:"model_path"`
	TokenizerPath string `toml:"tokenizer_path"`
	OrtLibrary    string `toml:"ort_library"`
}

type RecommendConfig struct {
	Strategy string `toml:"strategy"` // "vector" or "rules"
	TopK     int    `toml:"top_k"`
}

type VerifyConfig struct {
	Policy string `toml:"policy"` // "strict" or "tolerant"
}

type TierConfig struct {
	TimeoutMS int `toml:"timeout_ms"`
}

type Config struct {
	Server    ServerConfig    `toml:"server"`
	Storage   StorageConfig   `toml:"storage"`
	Detection DetectionConfig `toml:"detection"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Recommend RecommendConfig `toml:"recommend"`
	Verify    VerifyConfig    `toml:"verify"`
	Tiers     TierConfig      `toml:"tiers"`
	MenuPath  string          `toml:"menu_path"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
	}

	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}

	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default returns a configuration usable without any config file on
// disk. Every ML backend is left unconfigured, so the pipelines probe
// straight down to their terminal tiers.
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.AllowOrigins) == 0 {
		c.Server.AllowOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	if c.Storage.Path == "" {
		c.Storage.Path = "smartserve.db"
	}
	if c.Detection.Confidence == 0 {
		c.Detection.Confidence = 0.5
	}
	if c.Detection.SampleImage == "" {
		c.Detection.SampleImage = "cv/sample.jpg"
	}
	if c.Recommend.Strategy == "" {
		c.Recommend.Strategy = "vector"
	}
	if c.Recommend.TopK == 0 {
		c.Recommend.TopK = 3
	}
	if c.Verify.Policy == "" {
		c.Verify.Policy = "strict"
	}
	if c.Tiers.TimeoutMS == 0 {
		c.Tiers.TimeoutMS = 5000
	}
}

// TierTimeout is the per-tier unit-of-work deadline.
func (c *Config) TierTimeout() time.Duration {
	return time.Duration(c.Tiers.TimeoutMS) * time.Millisecond
}
