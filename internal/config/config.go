package config

import (
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/shopintel/competitor-xray/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Filters  model.FilterConfig  `yaml:"filters" mapstructure:"filters"`
	Scoring  model.ScoringPolicy `yaml:"scoring" mapstructure:"scoring"`
	Keywords KeywordsConfig      `yaml:"keywords" mapstructure:"keywords"`
	Catalog  CatalogConfig       `yaml:"catalog" mapstructure:"catalog"`
	Pacing   PacingConfig        `yaml:"pacing" mapstructure:"pacing"`
	Store    StoreConfig         `yaml:"store" mapstructure:"store"`
	Server   ServerConfig        `yaml:"server" mapstructure:"server"`
	Log      LogConfig           `yaml:"log" mapstructure:"log"`
}

// KeywordsConfig configures the keyword derivation stage.
type KeywordsConfig struct {
	Synonyms []string `yaml:"synonyms" mapstructure:"synonyms"`
}

// CatalogConfig selects the candidate source. An empty path means the
// built-in synthetic catalog.
type CatalogConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// PacingConfig controls stage latency simulation: "none" or "fixed".
type PacingConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode" validate:"oneof=none fixed"`
}

// StoreConfig selects the execution history backend: "memory" or "sqlite".
// Both are process-lifetime only.
type StoreConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver" validate:"oneof=memory sqlite"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port" validate:"gt=0,lte=65535"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("XRAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("filters.price_multiplier_min", 0.5)
	v.SetDefault("filters.price_multiplier_max", 2.0)
	v.SetDefault("filters.min_rating", 3.8)
	v.SetDefault("filters.min_reviews", 100)
	v.SetDefault("filters.target_category", "Water Bottles")
	v.SetDefault("scoring.review_weight", 0.40)
	v.SetDefault("scoring.rating_weight", 0.35)
	v.SetDefault("scoring.price_weight", 0.25)
	v.SetDefault("scoring.review_saturation", 50000)
	v.SetDefault("scoring.rating_baseline", 3.5)
	v.SetDefault("scoring.rating_span", 1.5)
	v.SetDefault("pacing.mode", "none")
	v.SetDefault("store.driver", "memory")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

var structValidator = validator.New()

// Validate rejects invalid configuration before any pipeline run starts.
// Invalid bounds must never surface mid-pipeline.
func (c *Config) Validate() error {
	if err := structValidator.Struct(c); err != nil {
		return eris.Wrap(err, "config: validate")
	}
	if err := ValidateFilters(c.Filters); err != nil {
		return err
	}
	return ValidateScoring(c.Scoring)
}

// ValidateFilters applies the struct tag rules plus the cross-field check
// the tags cannot express. Also used for per-request filter overrides.
func ValidateFilters(fc model.FilterConfig) error {
	if err := structValidator.Struct(fc); err != nil {
		return eris.Wrap(err, "config: validate filters")
	}
	if fc.PriceMultiplierMin > fc.PriceMultiplierMax {
		return eris.Errorf("config: price_multiplier_min %.2f exceeds price_multiplier_max %.2f",
			fc.PriceMultiplierMin, fc.PriceMultiplierMax)
	}
	return nil
}

// ValidateScoring checks the scoring policy, including the weight-sum rule.
func ValidateScoring(sp model.ScoringPolicy) error {
	if err := structValidator.Struct(sp); err != nil {
		return eris.Wrap(err, "config: validate scoring")
	}
	sum := sp.ReviewWeight + sp.RatingWeight + sp.PriceWeight
	if math.Abs(sum-1.0) > 1e-9 {
		return eris.Errorf("config: scoring weights must sum to 1.0, got %.3f", sum)
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
