package houdiniswap

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for all environment variables read by LoadConfig,
// e.g. HOUDINI_SWAP_TIMEOUT.
const EnvPrefix = "HOUDINI_SWAP"

// Config holds client settings assembled from defaults, an optional config
// file and environment variables, in increasing order of precedence.
type Config struct {
	APIKey             string
	APISecret          string
	BaseURL            string
	Timeout            time.Duration
	APIVersion         string
	VerifySSL          bool
	MaxRetries         int
	RetryBackoffFactor float64
	CacheEnabled       bool
	CacheTTL           time.Duration
}

// LoadConfig reads client settings. profile selects a section of the config
// file (falling back to the HOUDINI_SWAP_PROFILE variable, then "prod");
// configFile may be empty, in which case houdiniswap.{json,yaml,toml} is
// searched for in the working directory and the home directory. A .env file
// in the working directory is loaded first when present. A missing config
// file is not an error; a malformed one is.
func LoadConfig(profile, configFile string) (Config, error) {
	// Populates the process environment before viper reads it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("base_url", DefaultBaseURL)
	v.SetDefault("timeout", int(defaultTimeout/time.Second))
	v.SetDefault("api_version", defaultAPIVersion)
	v.SetDefault("verify_ssl", true)
	v.SetDefault("max_retries", defaultMaxRetries)
	v.SetDefault("retry_backoff_factor", defaultBackoffFactor)
	v.SetDefault("cache_enabled", false)
	v.SetDefault("cache_ttl", int(defaultCacheTTL/time.Second))

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Historical name, predates the generated HOUDINI_SWAP_BASE_URL form.
	_ = v.BindEnv("base_url", "HOUDINI_SWAP_API_URL")

	if profile == "" {
		profile = v.GetString("profile")
	}
	if profile == "" {
		profile = "prod"
	}

	file := viper.New()
	if configFile != "" {
		file.SetConfigFile(configFile)
	} else {
		file.SetConfigName("houdiniswap")
		file.AddConfigPath(".")
		file.AddConfigPath("$HOME")
	}
	if err := file.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, &Error{Message: "houdiniswap: reading config file", Cause: err}
		}
	} else {
		// Profile section first, then the global section on top.
		if section := file.GetStringMap(profile); len(section) > 0 {
			if err := v.MergeConfigMap(section); err != nil {
				return Config{}, &Error{Message: "houdiniswap: merging profile config", Cause: err}
			}
		}
		if section := file.GetStringMap("global"); len(section) > 0 {
			if err := v.MergeConfigMap(section); err != nil {
				return Config{}, &Error{Message: "houdiniswap: merging global config", Cause: err}
			}
		}
	}

	return Config{
		APIKey:             v.GetString("api_key"),
		APISecret:          v.GetString("api_secret"),
		BaseURL:            v.GetString("base_url"),
		Timeout:            time.Duration(v.GetInt("timeout")) * time.Second,
		APIVersion:         v.GetString("api_version"),
		VerifySSL:          v.GetBool("verify_ssl"),
		MaxRetries:         v.GetInt("max_retries"),
		RetryBackoffFactor: v.GetFloat64("retry_backoff_factor"),
		CacheEnabled:       v.GetBool("cache_enabled"),
		CacheTTL:           time.Duration(v.GetInt("cache_ttl")) * time.Second,
	}, nil
}

// NewClientFromConfig constructs a client from loaded settings. Credentials
// must be present in the config; everything else falls back to client
// defaults when zero.
func NewClientFromConfig(cfg Config, options ...Option) (*Client, error) {
	opts := make([]Option, 0, len(options)+8)
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, WithTimeout(cfg.Timeout))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, WithAPIVersion(cfg.APIVersion))
	}
	if !cfg.VerifySSL {
		opts = append(opts, WithInsecureSkipVerify())
	}
	if cfg.MaxRetries > 0 {
		opts = append(opts, WithMaxRetries(cfg.MaxRetries))
	}
	if cfg.RetryBackoffFactor > 0 {
		opts = append(opts, WithBackoffFactor(cfg.RetryBackoffFactor))
	}
	if cfg.CacheEnabled {
		ttl := cfg.CacheTTL
		if ttl <= 0 {
			ttl = defaultCacheTTL
		}
		opts = append(opts, WithCache(ttl))
	}
	opts = append(opts, options...)
	return New(cfg.APIKey, cfg.APISecret, opts...)
}
