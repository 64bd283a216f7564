package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
)

const (
	YTDLP_PATH                = "ytdlp.path"
	YTDLP_TIMEOUT_VERSION     = "ytdlp.timeouts.version"
	YTDLP_TIMEOUT_EXTRACT     = "ytdlp.timeouts.extract"
	YTDLP_TIMEOUT_THUMBNAIL   = "ytdlp.timeouts.thumbnail"
	DOWNLOAD_OUTPUT_PATH      = "download.output_path"
	DOWNLOAD_COOKIES_FILE     = "download.cookies_file"
	DOWNLOAD_BROWSER_COOKIES  = "download.browser_cookies"
	DOWNLOAD_RATE_LIMIT       = "download.rate_limit"
	DOWNLOAD_SPONSORBLOCK     = "download.sponsorblock_categories"
	DOWNLOAD_TIMEOUT          = "download.timeout"
	EXTRACT_THROTTLE_PERIOD   = "extract.throttle.period"
	EXTRACT_THROTTLE_REQUESTS = "extract.throttle.requests"
	GLOBAL_LANGUAGE           = "global.interface_language"
	LOGGING_LEVEL             = "logging.level"
	LOGGING_WRITE_IN_FILE     = "logging.write_in_file"
	LOGGING_FILE_PATH         = "logging.file_path"
	LOGGING_MAX_SIZE          = "logging.max_size"
	LOGGING_MAX_BACKUPS       = "logging.max_backups"
	LOGGING_MAX_AGE           = "logging.max_age"
	LOGGING_COMPRESS          = "logging.compress"
)

const (
	envPrefix               = "YTSAGE_"
	defaultThrottlePeriod   = 2 * time.Second
	defaultThrottleRequests = 1
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	k *koanf.Koanf
}

// Load reads defaults, the first config file found, a .env file in the
// working directory and YTSAGE_* environment variables, later sources
// overriding earlier ones. An explicit path must exist.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := map[string]any{
		YTDLP_PATH:                "yt-dlp",
		YTDLP_TIMEOUT_VERSION:     30 * time.Second,
		YTDLP_TIMEOUT_EXTRACT:     60 * time.Second,
		YTDLP_TIMEOUT_THUMBNAIL:   30 * time.Second,
		DOWNLOAD_OUTPUT_PATH:      "",
		DOWNLOAD_COOKIES_FILE:     "",
		DOWNLOAD_BROWSER_COOKIES:  "",
		DOWNLOAD_RATE_LIMIT:       "",
		DOWNLOAD_SPONSORBLOCK:     []string{"sponsor"},
		DOWNLOAD_TIMEOUT:          0 * time.Second,
		EXTRACT_THROTTLE_PERIOD:   defaultThrottlePeriod,
		EXTRACT_THROTTLE_REQUESTS: defaultThrottleRequests,
		GLOBAL_LANGUAGE:           "en",
		LOGGING_LEVEL:             "info",
		LOGGING_WRITE_IN_FILE:     false,
		LOGGING_FILE_PATH:         "ytsage.log",
		LOGGING_MAX_SIZE:          10, // megabytes
		LOGGING_MAX_BACKUPS:       3,
		LOGGING_MAX_AGE:           28, // days
		LOGGING_COMPRESS:          false,
	}
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
	}
	for _, p := range getConfigPaths(path) {
		if _, err := os.Stat(p); err == nil {
			if err := k.Load(file.Provider(p), toml.Parser()); err != nil {
				return nil, fmt.Errorf("error loading config %s: %w", p, err)
			}
			break
		}
	}

	// .env never overrides variables already present in the environment
	_ = godotenv.Load()

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	return &Config{k: k}, nil
}

// envKey maps YTSAGE_SECTION_KEY_NAME to section.key_name: the first
// underscore separates the section, the rest belong to the key.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	section, rest, found := strings.Cut(key, "_")
	if !found {
		return key
	}
	if section == "ytdlp" || section == "extract" {
		if sub, name, ok := strings.Cut(rest, "_"); ok && (sub == "timeouts" || sub == "throttle") {
			return section + "." + sub + "." + name
		}
	}
	return section + "." + rest
}

// Set overrides a single key, used for command line flags.
func (c *Config) Set(key string, value any) error {
	return c.k.Load(confmap.Provider(map[string]any{key: value}, "."), nil)
}

func (c *Config) YTDLP() YTDLPConfig {
	return YTDLPConfig{
		Path: c.k.String(YTDLP_PATH),
		Timeouts: TimeoutsConfig{
			Version:   c.k.Duration(YTDLP_TIMEOUT_VERSION),
			Extract:   c.k.Duration(YTDLP_TIMEOUT_EXTRACT),
			Thumbnail: c.k.Duration(YTDLP_TIMEOUT_THUMBNAIL),
		},
	}
}

func (c *Config) Download() DownloadConfig {
	return DownloadConfig{
		OutputPath:             c.k.String(DOWNLOAD_OUTPUT_PATH),
		CookiesFile:            c.k.String(DOWNLOAD_COOKIES_FILE),
		BrowserCookies:         c.k.String(DOWNLOAD_BROWSER_COOKIES),
		RateLimit:              c.k.String(DOWNLOAD_RATE_LIMIT),
		SponsorBlockCategories: c.stringList(DOWNLOAD_SPONSORBLOCK),
		Timeout:                c.k.Duration(DOWNLOAD_TIMEOUT),
	}
}

// stringList reads a list key. Environment variables arrive as a single
// comma-separated string.
func (c *Config) stringList(key string) []string {
	raw, ok := c.k.Get(key).(string)
	if !ok {
		return c.k.Strings(key)
	}
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func (c *Config) Throttle() ThrottleConfig {
	requests := c.k.Int(EXTRACT_THROTTLE_REQUESTS)
	if requests == 0 {
		requests = defaultThrottleRequests
	}
	return ThrottleConfig{
		Period:   c.k.Duration(EXTRACT_THROTTLE_PERIOD),
		Requests: requests,
	}
}

func (c *Config) Log() LoggingConfig {
	return LoggingConfig{
		LogLevel:    c.k.String(LOGGING_LEVEL),
		WriteInFile: c.k.Bool(LOGGING_WRITE_IN_FILE),
		FilePath:    c.k.String(LOGGING_FILE_PATH),
		MaxSize:     c.k.Int(LOGGING_MAX_SIZE),
		MaxBackups:  c.k.Int(LOGGING_MAX_BACKUPS),
		MaxAge:      c.k.Int(LOGGING_MAX_AGE),
		Compress:    c.k.Bool(LOGGING_COMPRESS),
	}
}

func (c *Config) Global() GlobalConfig {
	return GlobalConfig{
		InterfaceLanguage: c.k.String(GLOBAL_LANGUAGE),
	}
}

// Validate checks every section against its validation tags.
func (c *Config) Validate() error {
	validate := validator.New()

	sections := []any{
		c.YTDLP(),
		c.Download(),
		c.Throttle(),
		c.Log(),
		c.Global(),
	}
	var errs []error
	for _, s := range sections {
		if err := validate.Struct(s); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errors.Join(ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

func getConfigPaths(path string) []string {
	if path != "" {
		return []string{path}
	}

	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		home, _ := os.UserHomeDir()
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		"ytsage.toml",
		"config.toml",
		filepath.Join(xdgConfig, "ytsage", "config.toml"),
		"/etc/ytsage/config.toml",
	}
}
