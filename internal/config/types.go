package config

import (
	"strings"
	"time"
)

type YTDLPConfig struct {
	Path     string         `koanf:"path" validate:"required"`
	Timeouts TimeoutsConfig `koanf:"timeouts"`
}

// Durations are read as strings such as "60s"; a bare number is taken as
// nanoseconds and rejected by validation.
type TimeoutsConfig struct {
	Version   time.Duration `koanf:"version" validate:"gte=1s"`
	Extract   time.Duration `koanf:"extract" validate:"gte=1s"`
	Thumbnail time.Duration `koanf:"thumbnail" validate:"gte=1s"`
}

type DownloadConfig struct {
	OutputPath             string        `koanf:"output_path"`
	CookiesFile            string        `koanf:"cookies_file"`
	BrowserCookies         string        `koanf:"browser_cookies"`
	RateLimit              string        `koanf:"rate_limit"`
	SponsorBlockCategories []string      `koanf:"sponsorblock_categories" validate:"dive,required"`
	Timeout                time.Duration `koanf:"timeout" validate:"omitempty,gte=1s"`
}

type ThrottleConfig struct {
	Period   time.Duration `koanf:"period" validate:"omitempty,gte=1ms"`
	Requests int           `koanf:"requests" validate:"gt=0"`
}

type GlobalConfig struct {
	InterfaceLanguage string `koanf:"interface_language" validate:"required,bcp47_language_tag"`
}

type LoggingConfig struct {
	LogLevel    string `koanf:"level" validate:"required"`
	WriteInFile bool   `koanf:"write_in_file"`
	FilePath    string `koanf:"file_path" validate:"required_if=WriteInFile true"`
	MaxSize     int    `koanf:"max_size" validate:"gte=0"`
	MaxBackups  int    `koanf:"max_backups" validate:"gte=0"`
	MaxAge      int    `koanf:"max_age" validate:"gte=0"`
	Compress    bool   `koanf:"compress"`
}

func (c LoggingConfig) Level() string {
	return strings.ToLower(c.LogLevel)
}

func (c LoggingConfig) IsDebug() bool {
	return c.Level() == "debug" || c.Level() == "trace"
}
