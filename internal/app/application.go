package app

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/muratoffalex/ytsage/internal/app/di"
	"github.com/muratoffalex/ytsage/internal/config"
	"github.com/muratoffalex/ytsage/internal/extractor"
	"github.com/muratoffalex/ytsage/internal/logger"
)

type Application struct {
	Logger  logger.Logger
	cfg     *config.Config
	di      *di.Container
	limiter *rate.Limiter
}

func New(cfg *config.Config, opts ...di.Option) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}
	container.Logger.Debug("DI Container created")

	throttle := cfg.Throttle()
	limit := rate.Inf
	if throttle.Period > 0 {
		limit = rate.Every(throttle.Period / time.Duration(throttle.Requests))
	}
	container.Logger.WithFields(logger.Fields{
		"period":   throttle.Period,
		"requests": throttle.Requests,
	}).Debug("Configured extraction rate limiter")

	return &Application{
		Logger:  container.Logger,
		cfg:     cfg,
		di:      container,
		limiter: rate.NewLimiter(limit, throttle.Requests),
	}, nil
}

func (a *Application) Container() *di.Container {
	return a.di
}

func (a *Application) Gateway() *extractor.Gateway {
	return a.di.Gateway
}

// BatchResult pairs a URL with its extracted info, nil when extraction
// failed.
type BatchResult struct {
	URL  string
	Info extractor.Info
}

// ExtractAll extracts every URL in order, one process at a time, pacing
// invocations with the configured throttle. URLs not reached before ctx
// is done are reported with a nil Info.
func (a *Application) ExtractAll(ctx context.Context, urls []string, opts extractor.ExtractOptions) []BatchResult {
	results := make([]BatchResult, 0, len(urls))
	for _, url := range urls {
		result := BatchResult{URL: url}

		if err := a.limiter.Wait(ctx); err != nil {
			a.Logger.WithField("url", url).WithError(err).Warn("Extraction skipped")
			results = append(results, result)
			continue
		}

		result.Info = a.di.Gateway.ExtractInfo(ctx, url, opts)
		results = append(results, result)
	}
	return results
}

// DownloadOptions fills the fields left empty in opts from the download
// section of the configuration.
func (a *Application) DownloadOptions(opts extractor.DownloadOptions) extractor.DownloadOptions {
	dl := a.cfg.Download()
	if opts.OutputPath == "" {
		opts.OutputPath = dl.OutputPath
	}
	if opts.CookiesFile == "" && opts.BrowserCookies == "" {
		opts.CookiesFile = dl.CookiesFile
		opts.BrowserCookies = dl.BrowserCookies
	}
	if opts.RateLimit == "" {
		opts.RateLimit = dl.RateLimit
	}
	if opts.EnableSponsorBlock && len(opts.SponsorBlockCategories) == 0 {
		opts.SponsorBlockCategories = dl.SponsorBlockCategories
	}
	return opts
}

// Download builds the command for url and runs it to completion.
func (a *Application) Download(ctx context.Context, url string, opts extractor.DownloadOptions) extractor.Result {
	cmd := a.di.Gateway.BuildDownloadCommand(ctx, url, a.DownloadOptions(opts))

	log := a.Logger.WithFields(logger.Fields{
		"url":     url,
		"command": cmd,
	})
	log.Info("Started download")

	res := a.di.Runner.Run(ctx, a.cfg.Download().Timeout, cmd[0], cmd[1:])
	if !res.Success() {
		log.WithFields(logger.Fields{
			"exit_code": res.ExitCode,
			"stderr":    res.Stderr,
		}).Error("Download failed")
		return res
	}

	log.Info("Download finished")
	return res
}
