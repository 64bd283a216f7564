package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/muratoffalex/ytsage/internal/app"
	"github.com/muratoffalex/ytsage/internal/extractor"
)

func newVersionCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the yt-dlp version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, ok := rt.app.Gateway().Version(cmd.Context())
			if !ok {
				return ErrUnavailable
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ytsage %s\nyt-dlp %s\n", rt.version, version)
			return nil
		},
	}
}

func newCheckCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that yt-dlp can be executed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			gw := rt.app.Gateway()
			if !gw.CheckAvailability(cmd.Context()) {
				return fmt.Errorf("%w: %s", ErrUnavailable, rt.localize("cli.unavailable", map[string]any{
					"Path": gw.Executable(),
				}))
			}
			version, _ := gw.Version(cmd.Context())
			fmt.Fprintln(cmd.OutOrStdout(), rt.localize("cli.available", map[string]any{
				"Version": version,
			}))
			return nil
		},
	}
}

type infoFlags struct {
	flat           bool
	items          string
	cookies        string
	browserCookies string
	json           bool
}

func newInfoCommand(rt *runtime) *cobra.Command {
	var f infoFlags
	cmd := &cobra.Command{
		Use:   "info URL...",
		Short: "Extract metadata without downloading",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := extractor.ExtractOptions{
				Flat:           f.flat,
				PlaylistItems:  f.items,
				CookiesFile:    f.cookies,
				BrowserCookies: f.browserCookies,
			}

			var results []app.BatchResult
			if len(args) == 1 {
				results = []app.BatchResult{{
					URL:  args[0],
					Info: rt.app.Gateway().ExtractInfo(cmd.Context(), args[0], opts),
				}}
			} else {
				results = rt.app.ExtractAll(cmd.Context(), args, opts)
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range results {
				if res.Info == nil {
					failed++
					fmt.Fprintln(cmd.ErrOrStderr(), rt.localize("cli.no_result", map[string]any{"URL": res.URL}))
					continue
				}
				if f.json {
					if err := writeJSON(out, res.Info); err != nil {
						return err
					}
					continue
				}
				writeSummary(out, res.URL, res.Info)
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d URLs", ErrNoResult, failed, len(results))
			}
			return nil
		},
	}

	fl := cmd.Flags()
	fl.BoolVar(&f.flat, "flat", false, "list playlist entries without resolving them")
	fl.StringVar(&f.items, "items", "", "playlist items to extract, e.g. 1-10")
	fl.StringVar(&f.cookies, "cookies", "", "cookies file")
	fl.StringVar(&f.browserCookies, "cookies-from-browser", "", "browser to read cookies from")
	fl.BoolVar(&f.json, "json", false, "print the raw JSON document")
	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSummary(w io.Writer, url string, info extractor.Info) {
	fmt.Fprintf(w, "URL:      %s\n", url)
	if t := info.Type(); t != "" {
		fmt.Fprintf(w, "Type:     %s\n", t)
	}

	extracted, err := info.Extracted()
	if err == nil {
		if extracted.ID != "" {
			fmt.Fprintf(w, "ID:       %s\n", extracted.ID)
		}
		if extracted.Title != nil {
			fmt.Fprintf(w, "Title:    %s\n", *extracted.Title)
		}
		if extracted.Uploader != nil {
			fmt.Fprintf(w, "Uploader: %s\n", *extracted.Uploader)
		}
		if extracted.ViewCount != nil {
			fmt.Fprintf(w, "Views:    %.0f\n", *extracted.ViewCount)
		}
	}

	if info.IsPlaylist() {
		entries := info.Entries()
		fmt.Fprintf(w, "Entries:  %d\n", len(entries))
		for i, e := range entries {
			fmt.Fprintf(w, "  %3d. %s\n", i+1, firstNonEmpty(e.String("title"), e.String("id"), e.String("url")))
		}
	} else if formats := info.Formats(); formats != nil {
		fmt.Fprintf(w, "Formats:  %d\n", len(formats))
	}
	fmt.Fprintln(w)
}

func newSubtitlesCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "subtitles URL",
		Short: "List manual and automatic subtitle languages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subs := rt.app.Gateway().Subtitles(cmd.Context(), args[0])
			if subs == nil {
				return fmt.Errorf("%w: %s", ErrNoResult, args[0])
			}

			out := cmd.OutOrStdout()
			manual, auto := subs.ManualLanguages(), subs.AutomaticLanguages()
			if len(manual) == 0 && len(auto) == 0 {
				fmt.Fprintln(out, rt.localize("cli.no_subtitles", nil))
				return nil
			}
			fmt.Fprintf(out, "%s: %s\n", rt.localize("cli.subtitles", nil), strings.Join(manual, ", "))
			fmt.Fprintf(out, "%s: %s\n", rt.localize("cli.automatic_captions", nil), strings.Join(auto, ", "))
			return nil
		},
	}
}

func newThumbnailsCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "thumbnails URL",
		Short: "List available thumbnails",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			thumbs := rt.app.Gateway().Thumbnails(cmd.Context(), args[0])
			if thumbs == nil {
				return fmt.Errorf("%w: %s", ErrNoResult, args[0])
			}

			out := cmd.OutOrStdout()
			for _, t := range thumbs {
				size := "-"
				w, wok := t.Float("width")
				h, hok := t.Float("height")
				if wok && hok {
					size = fmt.Sprintf("%.0fx%.0f", w, h)
				}
				fmt.Fprintf(out, "%-12s %-10s %s\n", firstNonEmpty(t.String("id"), "-"), size, t.String("url"))
			}
			return nil
		},
	}
}

func newThumbnailCommand(rt *runtime) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "thumbnail URL",
		Short: "Download the best thumbnail",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, ok := rt.app.Gateway().DownloadThumbnail(cmd.Context(), args[0], output)
			if !ok {
				return fmt.Errorf("%w: %s", ErrNoResult, args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), rt.localize("cli.thumbnail_saved", map[string]any{"Path": path}))
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "target file; its extension is chosen by yt-dlp")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
