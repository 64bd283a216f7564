package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/muratoffalex/ytsage/internal/app"
	"github.com/muratoffalex/ytsage/internal/app/di"
	"github.com/muratoffalex/ytsage/internal/config"
)

var (
	ErrNoResult    = errors.New("nothing extracted")
	ErrUnavailable = errors.New("yt-dlp is not available")
)

type globalFlags struct {
	configPath string
	executable string
	language   string
	logLevel   string
}

// runtime is shared by all subcommands; it is filled in by the root
// command's PersistentPreRunE.
type runtime struct {
	flags   globalFlags
	diOpts  []di.Option
	app     *app.Application
	version string
}

func (r *runtime) load() error {
	cfg, err := config.Load(r.flags.configPath)
	if err != nil {
		return err
	}

	overrides := map[string]string{
		config.YTDLP_PATH:      r.flags.executable,
		config.GLOBAL_LANGUAGE: r.flags.language,
		config.LOGGING_LEVEL:   r.flags.logLevel,
	}
	for key, value := range overrides {
		if value == "" {
			continue
		}
		if err := cfg.Set(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}

	application, err := app.New(cfg, r.diOpts...)
	if err != nil {
		return err
	}
	r.app = application
	return nil
}

func (r *runtime) localize(id string, data map[string]any) string {
	return r.app.Container().Localizer.Localize(id, data)
}

// NewRootCommand builds the ytsage command tree. Container options are
// forwarded to every application the commands create.
func NewRootCommand(version string, opts ...di.Option) *cobra.Command {
	rt := &runtime{diOpts: opts, version: version}

	root := &cobra.Command{
		Use:           "ytsage",
		Short:         "Inspect media with yt-dlp and build download commands",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.load()
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&rt.flags.configPath, "config", "", "path to config file")
	pf.StringVar(&rt.flags.executable, "ytdlp", "", "path or name of the yt-dlp executable")
	pf.StringVar(&rt.flags.language, "lang", "", "interface language (en, es, ru)")
	pf.StringVar(&rt.flags.logLevel, "log-level", "", "log level (trace, debug, info, warn, error)")

	root.AddCommand(
		newVersionCommand(rt),
		newCheckCommand(rt),
		newInfoCommand(rt),
		newFormatsCommand(rt),
		newSubtitlesCommand(rt),
		newThumbnailsCommand(rt),
		newThumbnailCommand(rt),
		newBuildCommand(rt),
		newDownloadCommand(rt),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure. An interrupt
// cancels the yt-dlp process in flight.
func Execute(version string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := NewRootCommand(version).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
