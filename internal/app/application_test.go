package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/muratoffalex/ytsage/internal/app/di"
	"github.com/muratoffalex/ytsage/internal/config"
	"github.com/muratoffalex/ytsage/internal/extractor"
	"github.com/muratoffalex/ytsage/internal/extractor/extractortest"
	"github.com/muratoffalex/ytsage/internal/logger"
)

const (
	urlA = "https://www.youtube.com/watch?v=aaaaaaaaaaa"
	urlB = "https://www.youtube.com/watch?v=bbbbbbbbbbb"
	urlC = "https://www.youtube.com/watch?v=ccccccccccc"
)

func newConfig(t *testing.T, overrides map[string]any) *config.Config {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, cfg.Set(config.EXTRACT_THROTTLE_PERIOD, "0s"))
	for key, value := range overrides {
		require.NoError(t, cfg.Set(key, value))
	}
	return cfg
}

func newTestApp(t *testing.T, cfg *config.Config, runner *extractortest.Runner) (*Application, *logger.TestLogger) {
	t.Helper()
	testLogger := logger.NewTestLogger()
	application, err := New(cfg, di.WithRunner(runner), di.WithLogger(testLogger))
	require.NoError(t, err)
	return application, testLogger
}

func TestNew(t *testing.T) {
	t.Run("invalid config", func(t *testing.T) {
		cfg := newConfig(t, map[string]any{config.YTDLP_PATH: ""})
		_, err := New(cfg, di.WithLogger(logger.NewTestLogger()))
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("gateway follows config", func(t *testing.T) {
		cfg := newConfig(t, map[string]any{
			config.YTDLP_PATH:            "/opt/yt-dlp",
			config.YTDLP_TIMEOUT_EXTRACT: "2m",
		})
		application, _ := newTestApp(t, cfg, extractortest.NewRunner(nil))

		assert.Equal(t, "/opt/yt-dlp", application.Gateway().Executable())
		assert.Equal(t, 2*time.Minute, application.Gateway().Timeouts().Extract)
		assert.Same(t, application.Gateway(), application.Container().Gateway)
		assert.Equal(t, "en", application.Container().Localizer.Language().String())
	})
}

func TestApplication_ExtractAll(t *testing.T) {
	t.Run("keeps order and reports failures", func(t *testing.T) {
		runner := extractortest.NewRunner(extractortest.ByURL(map[string]string{
			urlA: `{"id":"aaaaaaaaaaa"}`,
			urlC: `{"id":"ccccccccccc"}`,
		}))
		application, _ := newTestApp(t, newConfig(t, nil), runner)

		results := application.ExtractAll(context.Background(), []string{urlA, urlB, urlC}, extractor.ExtractOptions{Flat: true})
		require.Len(t, results, 3)
		assert.Equal(t, urlA, results[0].URL)
		assert.Equal(t, "aaaaaaaaaaa", results[0].Info.String("id"))
		assert.Equal(t, urlB, results[1].URL)
		assert.Nil(t, results[1].Info)
		assert.Equal(t, "ccccccccccc", results[2].Info.String("id"))

		calls := runner.Calls()
		require.Len(t, calls, 3)
		for _, c := range calls {
			assert.True(t, c.Has("--flat-playlist"))
		}
	})

	t.Run("cancelled context skips the rest", func(t *testing.T) {
		runner := extractortest.NewRunner(extractortest.Stdout(`{"id":"x"}`))
		application, testLogger := newTestApp(t, newConfig(t, nil), runner)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		results := application.ExtractAll(ctx, []string{urlA, urlB}, extractor.ExtractOptions{})

		require.Len(t, results, 2)
		assert.Nil(t, results[0].Info)
		assert.Nil(t, results[1].Info)
		assert.Empty(t, runner.Calls())
		assert.Len(t, testLogger.Messages(logger.LevelWarn), 2)
	})

	t.Run("throttled", func(t *testing.T) {
		cfg := newConfig(t, map[string]any{
			config.EXTRACT_THROTTLE_PERIOD:   "40ms",
			config.EXTRACT_THROTTLE_REQUESTS: 1,
		})
		runner := extractortest.NewRunner(extractortest.Stdout(`{"id":"x"}`))
		application, _ := newTestApp(t, cfg, runner)

		start := time.Now()
		results := application.ExtractAll(context.Background(), []string{urlA, urlB, urlC}, extractor.ExtractOptions{})
		assert.Len(t, results, 3)
		assert.GreaterOrEqual(t, time.Since(start), 70*time.Millisecond)
	})
}

func TestApplication_DownloadOptions(t *testing.T) {
	cfg := newConfig(t, map[string]any{
		config.DOWNLOAD_OUTPUT_PATH:     "/media",
		config.DOWNLOAD_COOKIES_FILE:    "/cfg/cookies.txt",
		config.DOWNLOAD_BROWSER_COOKIES: "firefox",
		config.DOWNLOAD_RATE_LIMIT:      "1M",
		config.DOWNLOAD_SPONSORBLOCK:    []string{"sponsor", "intro"},
	})
	application, _ := newTestApp(t, cfg, extractortest.NewRunner(nil))

	t.Run("empty fields come from config", func(t *testing.T) {
		opts := application.DownloadOptions(extractor.DownloadOptions{EnableSponsorBlock: true})
		assert.Equal(t, "/media", opts.OutputPath)
		assert.Equal(t, "/cfg/cookies.txt", opts.CookiesFile)
		assert.Equal(t, "firefox", opts.BrowserCookies)
		assert.Equal(t, "1M", opts.RateLimit)
		assert.Equal(t, []string{"sponsor", "intro"}, opts.SponsorBlockCategories)
	})

	t.Run("explicit values win", func(t *testing.T) {
		opts := application.DownloadOptions(extractor.DownloadOptions{
			OutputPath:     "/tmp/out",
			BrowserCookies: "chrome",
			RateLimit:      "5M",
		})
		assert.Equal(t, "/tmp/out", opts.OutputPath)
		assert.Empty(t, opts.CookiesFile)
		assert.Equal(t, "chrome", opts.BrowserCookies)
		assert.Equal(t, "5M", opts.RateLimit)
		assert.Empty(t, opts.SponsorBlockCategories)
	})
}

func TestApplication_Download(t *testing.T) {
	t.Run("runs the built command", func(t *testing.T) {
		cfg := newConfig(t, map[string]any{
			config.DOWNLOAD_OUTPUT_PATH: "/media",
			config.DOWNLOAD_TIMEOUT:     "10m",
		})
		runner := extractortest.NewRunner(nil)
		application, testLogger := newTestApp(t, cfg, runner)

		res := application.Download(context.Background(), urlA, extractor.DownloadOptions{Resolution: "720"})
		assert.True(t, res.Success())

		calls := runner.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, 10*time.Minute, calls[0].Timeout)
		assert.Equal(t, []string{
			"yt-dlp",
			"-S", "res:720",
			"-o", filepath.Join("/media", "%(title)s_%(resolution)s.%(ext)s"),
			"--force-overwrites",
			urlA,
		}, calls[0].Argv())
		assert.True(t, testLogger.HasEntry(logger.LevelInfo, "Download finished"))
	})

	t.Run("failure is reported", func(t *testing.T) {
		runner := extractortest.NewRunner(func(context.Context, extractortest.Call) extractor.Result {
			return extractor.Result{ExitCode: 1, Stderr: "ERROR: HTTP Error 403"}
		})
		application, testLogger := newTestApp(t, newConfig(t, nil), runner)

		res := application.Download(context.Background(), urlA, extractor.DownloadOptions{})
		assert.Equal(t, 1, res.ExitCode)
		entry, ok := testLogger.Find(logger.LevelError, "Download failed")
		require.True(t, ok)
		assert.Equal(t, "ERROR: HTTP Error 403", entry.Fields["stderr"])
	})
}
