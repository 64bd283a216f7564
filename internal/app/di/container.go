package di

import (
	"fmt"

	"github.com/muratoffalex/ytsage/internal/config"
	"github.com/muratoffalex/ytsage/internal/extractor"
	"github.com/muratoffalex/ytsage/internal/logger"
	"github.com/muratoffalex/ytsage/internal/service"
)

// Container owns the long-lived collaborators. One Gateway is built here
// and handed to every consumer.
type Container struct {
	Cfg       *config.Config
	Logger    logger.Logger
	Localizer *service.Localizer
	Runner    extractor.Runner
	Gateway   *extractor.Gateway
}

type Option func(*Container)

// WithRunner replaces the process runner shared by the gateway and
// downloads.
func WithRunner(r extractor.Runner) Option {
	return func(c *Container) {
		c.Runner = r
	}
}

func WithLogger(l logger.Logger) Option {
	return func(c *Container) {
		c.Logger = l
	}
}

func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	c := &Container{
		Cfg:    cfg,
		Runner: extractor.ExecRunner{},
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.Logger == nil {
		logCfg := cfg.Log()
		c.Logger = logger.NewLogrusLogger(&logCfg)
	}

	localizer, err := service.NewLocalizer(cfg.Global().InterfaceLanguage)
	if err != nil {
		return nil, fmt.Errorf("create localizer: %w", err)
	}
	c.Localizer = localizer

	ytdlpCfg := cfg.YTDLP()
	c.Gateway = extractor.New(
		ytdlpCfg.Path,
		extractor.WithRunner(c.Runner),
		extractor.WithLogger(c.Logger.WithField("component", "extractor")),
		extractor.WithTimeouts(extractor.Timeouts{
			Version:   ytdlpCfg.Timeouts.Version,
			Extract:   ytdlpCfg.Timeouts.Extract,
			Thumbnail: ytdlpCfg.Timeouts.Thumbnail,
		}),
	)

	return c, nil
}
