package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/muratoffalex/ytsage/internal/extractor"
)

func bindDownloadFlags(fl *pflag.FlagSet, o *extractor.DownloadOptions) {
	fl.StringVarP(&o.FormatID, "format", "f", "", "format id to download")
	fl.StringVar(&o.Resolution, "resolution", "", "preferred resolution when no format id is given, e.g. 720")
	fl.StringVarP(&o.OutputPath, "output", "o", "", "output directory")
	fl.BoolVar(&o.IsPlaylist, "playlist", false, "store files under a directory named after the playlist")
	fl.StringVar(&o.PlaylistItems, "items", "", "playlist items to download, e.g. 1-10")
	fl.StringSliceVar(&o.SubtitleLangs, "subs", nil, `subtitle languages as "<code> - <label>" or "<code>"`)
	fl.BoolVar(&o.MergeSubs, "embed-subs", false, "embed subtitles into the output file")
	fl.BoolVar(&o.EnableSponsorBlock, "sponsorblock", false, "remove SponsorBlock segments")
	fl.StringSliceVar(&o.SponsorBlockCategories, "sponsorblock-categories", nil, "SponsorBlock categories to remove")
	fl.BoolVar(&o.SaveDescription, "description", false, "write the description to a file")
	fl.BoolVar(&o.EmbedChapters, "chapters", false, "embed chapter markers")
	fl.StringVar(&o.CookiesFile, "cookies", "", "cookies file")
	fl.StringVar(&o.BrowserCookies, "cookies-from-browser", "", "browser to read cookies from")
	fl.StringVar(&o.RateLimit, "rate-limit", "", "maximum download rate, e.g. 2M")
	fl.StringVar(&o.DownloadSection, "section", "", `section to download, e.g. "*1:00-2:30"`)
	fl.BoolVar(&o.ForceKeyframes, "force-keyframes", false, "cut the section at exact keyframes")
}

func newBuildCommand(rt *runtime) *cobra.Command {
	var opts extractor.DownloadOptions
	cmd := &cobra.Command{
		Use:   "command URL",
		Short: "Print the yt-dlp download command",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := rt.app.Gateway().BuildDownloadCommand(cmd.Context(), args[0], rt.app.DownloadOptions(opts))
			fmt.Fprintln(cmd.OutOrStdout(), shellJoin(argv))
			return nil
		},
	}
	bindDownloadFlags(cmd.Flags(), &opts)
	return cmd
}

func newDownloadCommand(rt *runtime) *cobra.Command {
	var opts extractor.DownloadOptions
	cmd := &cobra.Command{
		Use:   "download URL",
		Short: "Download a video or playlist",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res := rt.app.Download(cmd.Context(), args[0], opts)
			if !res.Success() {
				if res.Stderr != "" {
					fmt.Fprintln(cmd.ErrOrStderr(), strings.TrimSpace(res.Stderr))
				}
				return errors.New(rt.localize("cli.download_failed", map[string]any{"Code": res.ExitCode}))
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.localize("cli.download_finished", nil))
			return nil
		},
	}
	bindDownloadFlags(cmd.Flags(), &opts)
	return cmd
}

// shellJoin renders argv so it can be pasted into a POSIX shell.
func shellJoin(argv []string) string {
	quoted := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" || strings.ContainsAny(arg, " \t\n\"'\\$`*?[]()%&;|<>#~") {
			quoted[i] = "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
			continue
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
