package extractor

import (
	"context"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/muratoffalex/ytsage/internal/logger"
)

const DefaultExecutable = "yt-dlp"

const (
	DefaultVersionTimeout   = 30 * time.Second
	DefaultExtractTimeout   = 60 * time.Second
	DefaultThumbnailTimeout = 30 * time.Second
)

type Timeouts struct {
	Version   time.Duration
	Extract   time.Duration
	Thumbnail time.Duration
}

func DefaultTimeouts() Timeouts {
	return Timeouts{
		Version:   DefaultVersionTimeout,
		Extract:   DefaultExtractTimeout,
		Thumbnail: DefaultThumbnailTimeout,
	}
}

// ExtractOptions tune a metadata extraction.
type ExtractOptions struct {
	// Flat lists playlist entries without resolving each of them.
	Flat bool
	// PlaylistItems selects entries, e.g. "1-10" or "1,3,5".
	PlaylistItems string
	// CookiesFile wins over BrowserCookies when both are set.
	CookiesFile    string
	BrowserCookies string
}

// Gateway runs yt-dlp and turns its output into Info documents. Every
// failure is logged and reported as an absent result.
type Gateway struct {
	executable string
	runner     Runner
	logger     logger.Logger
	timeouts   Timeouts
}

type Option func(*Gateway)

func WithRunner(r Runner) Option {
	return func(g *Gateway) {
		g.runner = r
	}
}

func WithLogger(l logger.Logger) Option {
	return func(g *Gateway) {
		g.logger = l
	}
}

// WithTimeouts overrides the timeouts that are set to a positive value.
func WithTimeouts(t Timeouts) Option {
	return func(g *Gateway) {
		if t.Version > 0 {
			g.timeouts.Version = t.Version
		}
		if t.Extract > 0 {
			g.timeouts.Extract = t.Extract
		}
		if t.Thumbnail > 0 {
			g.timeouts.Thumbnail = t.Thumbnail
		}
	}
}

func New(executable string, opts ...Option) *Gateway {
	if executable == "" {
		executable = DefaultExecutable
	}
	g := &Gateway{
		executable: executable,
		runner:     ExecRunner{},
		logger:     logger.NewDiscardLogger(),
		timeouts:   DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger.WithField("executable", executable).Debug("Extractor gateway initialized")
	return g
}

func (g *Gateway) Executable() string {
	return g.executable
}

func (g *Gateway) Timeouts() Timeouts {
	return g.timeouts
}

func (g *Gateway) run(ctx context.Context, timeout time.Duration, args []string) Result {
	g.logger.WithFields(logger.Fields{
		"command": g.executable + " " + strings.Join(args, " "),
		"timeout": timeout,
	}).Debug("Executing command")

	res := g.runner.Run(ctx, timeout, g.executable, args)
	if res.ExitCode == FailedExitCode {
		g.logger.WithFields(logger.Fields{
			"executable": g.executable,
			"error":      res.Stderr,
		}).Error("Failed to execute command")
	}
	return res
}

// CheckAvailability reports whether the executable exists and answers the
// version probe. A custom executable that cannot be found on disk or in
// PATH is rejected without spawning anything.
func (g *Gateway) CheckAvailability(ctx context.Context) bool {
	if g.executable != DefaultExecutable {
		if !executableExists(g.executable) {
			g.logger.WithField("executable", g.executable).Debug("yt-dlp binary not found")
			return false
		}
	}

	_, ok := g.Version(ctx)
	return ok
}

func executableExists(ref string) bool {
	if strings.ContainsRune(ref, os.PathSeparator) || strings.ContainsRune(ref, '/') {
		_, err := os.Stat(ref)
		return err == nil
	}
	_, err := exec.LookPath(ref)
	return err == nil
}

func (g *Gateway) Version(ctx context.Context) (string, bool) {
	res := g.run(ctx, g.timeouts.Version, []string{"--version"})
	if !res.Success() {
		g.logger.WithFields(logger.Fields{
			"exit_code": res.ExitCode,
			"stderr":    res.Stderr,
		}).Error("Failed to get version")
		return "", false
	}
	return strings.TrimSpace(res.Stdout), true
}

// ExtractInfo dumps the metadata of url without downloading media. It
// returns nil when the process fails or its output cannot be parsed.
func (g *Gateway) ExtractInfo(ctx context.Context, url string, opts ExtractOptions) Info {
	args := []string{
		"--dump-json",
		"--no-warnings",
		"--skip-download",
	}
	if opts.Flat {
		args = append(args, "--flat-playlist")
	}
	if opts.PlaylistItems != "" {
		args = append(args, "--playlist-items", opts.PlaylistItems)
	}
	args = appendCookies(args, opts.CookiesFile, opts.BrowserCookies)
	args = append(args, url)

	res := g.run(ctx, g.timeouts.Extract, args)
	if !res.Success() {
		g.logger.WithFields(logger.Fields{
			"url":       url,
			"exit_code": res.ExitCode,
			"stderr":    res.Stderr,
		}).Error("Failed to extract info")
		return nil
	}

	info, err := parseOutput(res.Stdout)
	if err != nil {
		g.logger.WithField("url", url).WithError(err).Error("Failed to parse extracted info")
		return nil
	}
	return info
}

func (g *Gateway) Formats(ctx context.Context, url string) []Info {
	info := g.ExtractInfo(ctx, url, ExtractOptions{})
	if info == nil {
		return nil
	}
	if _, ok := info[FieldFormats]; !ok {
		return nil
	}
	return info.Formats()
}

func (g *Gateway) Subtitles(ctx context.Context, url string) *Subtitles {
	info := g.ExtractInfo(ctx, url, ExtractOptions{})
	if info == nil {
		return nil
	}

	subs := &Subtitles{
		Subtitles:         info.Map(FieldSubtitles),
		AutomaticCaptions: info.Map(FieldAutomaticCaptions),
	}
	if subs.Subtitles == nil {
		subs.Subtitles = map[string]any{}
	}
	if subs.AutomaticCaptions == nil {
		subs.AutomaticCaptions = map[string]any{}
	}
	return subs
}

func (g *Gateway) Thumbnails(ctx context.Context, url string) []Info {
	info := g.ExtractInfo(ctx, url, ExtractOptions{})
	if info == nil {
		return nil
	}
	if _, ok := info[FieldThumbnails]; !ok {
		return nil
	}
	return info.Thumbnails()
}

func appendCookies(args []string, file, browser string) []string {
	if file != "" {
		return append(args, "--cookies", file)
	}
	if browser != "" {
		return append(args, "--cookies-from-browser", browser)
	}
	return args
}
