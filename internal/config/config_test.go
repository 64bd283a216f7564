package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate keeps Load away from files and variables of the host.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	y := cfg.YTDLP()
	assert.Equal(t, "yt-dlp", y.Path)
	assert.Equal(t, 30*time.Second, y.Timeouts.Version)
	assert.Equal(t, 60*time.Second, y.Timeouts.Extract)
	assert.Equal(t, 30*time.Second, y.Timeouts.Thumbnail)

	d := cfg.Download()
	assert.Empty(t, d.OutputPath)
	assert.Equal(t, []string{"sponsor"}, d.SponsorBlockCategories)
	assert.Zero(t, d.Timeout)

	assert.Equal(t, ThrottleConfig{Period: 2 * time.Second, Requests: 1}, cfg.Throttle())
	assert.Equal(t, "en", cfg.Global().InterfaceLanguage)
	assert.Equal(t, "info", cfg.Log().Level())
	assert.False(t, cfg.Log().WriteInFile)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[ytdlp]
path = "/opt/yt-dlp"

[ytdlp.timeouts]
extract = "2m"

[download]
output_path = "/media"
sponsorblock_categories = ["sponsor", "selfpromo"]

[extract.throttle]
period = "500ms"
requests = 3

[global]
interface_language = "es"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "/opt/yt-dlp", cfg.YTDLP().Path)
	assert.Equal(t, 2*time.Minute, cfg.YTDLP().Timeouts.Extract)
	assert.Equal(t, 30*time.Second, cfg.YTDLP().Timeouts.Version)
	assert.Equal(t, "/media", cfg.Download().OutputPath)
	assert.Equal(t, []string{"sponsor", "selfpromo"}, cfg.Download().SponsorBlockCategories)
	assert.Equal(t, ThrottleConfig{Period: 500 * time.Millisecond, Requests: 3}, cfg.Throttle())
	assert.Equal(t, "es", cfg.Global().InterfaceLanguage)
}

func TestLoad_SearchPaths(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ytsage.toml"), []byte("[download]\nrate_limit = \"1M\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("[download]\nrate_limit = \"9M\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "1M", cfg.Download().RateLimit)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_BrokenFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("[ytdlp\npath ="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_Environment(t *testing.T) {
	isolate(t)
	t.Setenv("YTSAGE_YTDLP_PATH", "/env/yt-dlp")
	t.Setenv("YTSAGE_YTDLP_TIMEOUTS_EXTRACT", "90s")
	t.Setenv("YTSAGE_EXTRACT_THROTTLE_REQUESTS", "4")
	t.Setenv("YTSAGE_DOWNLOAD_RATE_LIMIT", "5M")
	t.Setenv("YTSAGE_LOGGING_LEVEL", "DEBUG")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/env/yt-dlp", cfg.YTDLP().Path)
	assert.Equal(t, 90*time.Second, cfg.YTDLP().Timeouts.Extract)
	assert.Equal(t, 4, cfg.Throttle().Requests)
	assert.Equal(t, "5M", cfg.Download().RateLimit)
	assert.True(t, cfg.Log().IsDebug())
}

func TestLoad_EnvironmentList(t *testing.T) {
	tests := []struct {
		value    string
		expected []string
	}{
		{value: "sponsor,intro", expected: []string{"sponsor", "intro"}},
		{value: " sponsor , selfpromo ,", expected: []string{"sponsor", "selfpromo"}},
		{value: "outro", expected: []string{"outro"}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			isolate(t)
			t.Setenv("YTSAGE_DOWNLOAD_SPONSORBLOCK_CATEGORIES", tt.value)

			cfg, err := Load("")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cfg.Download().SponsorBlockCategories)
			assert.NoError(t, cfg.Validate())
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("YTSAGE_DOWNLOAD_OUTPUT_PATH=/from/dotenv\n"), 0o644))
	t.Cleanup(func() { _ = os.Unsetenv("YTSAGE_DOWNLOAD_OUTPUT_PATH") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/from/dotenv", cfg.Download().OutputPath)
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"YTSAGE_YTDLP_PATH":                       YTDLP_PATH,
		"YTSAGE_YTDLP_TIMEOUTS_THUMBNAIL":         YTDLP_TIMEOUT_THUMBNAIL,
		"YTSAGE_DOWNLOAD_OUTPUT_PATH":             DOWNLOAD_OUTPUT_PATH,
		"YTSAGE_DOWNLOAD_SPONSORBLOCK_CATEGORIES": DOWNLOAD_SPONSORBLOCK,
		"YTSAGE_EXTRACT_THROTTLE_PERIOD":          EXTRACT_THROTTLE_PERIOD,
		"YTSAGE_GLOBAL_INTERFACE_LANGUAGE":        GLOBAL_LANGUAGE,
		"YTSAGE_LOGGING_WRITE_IN_FILE":            LOGGING_WRITE_IN_FILE,
		"YTSAGE_DEBUG":                            "debug",
	}
	for in, want := range tests {
		assert.Equal(t, want, envKey(in), in)
	}
}

func TestConfig_Set(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	require.NoError(t, cfg.Set(YTDLP_PATH, "/flag/yt-dlp"))
	require.NoError(t, cfg.Set(GLOBAL_LANGUAGE, "ru"))

	assert.Equal(t, "/flag/yt-dlp", cfg.YTDLP().Path)
	assert.Equal(t, "ru", cfg.Global().InterfaceLanguage)
	assert.Equal(t, 60*time.Second, cfg.YTDLP().Timeouts.Extract)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{name: "empty executable", key: YTDLP_PATH, value: ""},
		{name: "zero extract timeout", key: YTDLP_TIMEOUT_EXTRACT, value: "0s"},
		{name: "bare number timeout", key: YTDLP_TIMEOUT_EXTRACT, value: 60},
		{name: "sub-second version timeout", key: YTDLP_TIMEOUT_VERSION, value: "500ms"},
		{name: "bare number download timeout", key: DOWNLOAD_TIMEOUT, value: 600},
		{name: "negative throttle period", key: EXTRACT_THROTTLE_PERIOD, value: "-1s"},
		{name: "negative throttle", key: EXTRACT_THROTTLE_REQUESTS, value: -1},
		{name: "bad language", key: GLOBAL_LANGUAGE, value: "not a language"},
		{name: "empty category", key: DOWNLOAD_SPONSORBLOCK, value: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			cfg, err := Load("")
			require.NoError(t, err)
			require.NoError(t, cfg.Set(tt.key, tt.value))

			err = cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	t.Run("bare number timeout in file", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "config.toml")
		require.NoError(t, os.WriteFile(path, []byte("[ytdlp.timeouts]\nextract = 60\n"), 0o644))

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("log file requires a path", func(t *testing.T) {
		isolate(t)
		cfg, err := Load("")
		require.NoError(t, err)
		require.NoError(t, cfg.Set(LOGGING_WRITE_IN_FILE, true))
		require.NoError(t, cfg.Set(LOGGING_FILE_PATH, ""))

		assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})
}
