package extractor

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/muratoffalex/ytsage/internal/logger"
)

const (
	singleOutputTemplate   = "%(title)s_%(resolution)s.%(ext)s"
	playlistOutputTemplate = "%(playlist_title)s/%(title)s_%(resolution)s.%(ext)s"

	drcSuffix = "-drc"
)

// DownloadOptions are the user selections turned into a download command.
// Zero values leave the matching yt-dlp behavior at its default.
type DownloadOptions struct {
	// FormatID selects an exact format; it wins over Resolution.
	FormatID   string
	Resolution string

	// OutputPath is the target directory, the working directory when empty.
	OutputPath    string
	IsPlaylist    bool
	PlaylistItems string

	// SubtitleLangs holds "<code> - <label>" selections.
	SubtitleLangs []string
	MergeSubs     bool

	EnableSponsorBlock     bool
	SponsorBlockCategories []string

	SaveDescription bool
	EmbedChapters   bool

	CookiesFile    string
	BrowserCookies string

	RateLimit string

	DownloadSection string
	ForceKeyframes  bool
}

// BuildDownloadCommand assembles the full yt-dlp invocation for url,
// executable first and url last. When a format id is given the formats of
// url are extracted once to tell audio-only formats from video ones.
func (g *Gateway) BuildDownloadCommand(ctx context.Context, url string, opts DownloadOptions) []string {
	cmd := []string{g.executable}

	switch {
	case opts.FormatID != "":
		cmd = append(cmd, g.formatSelection(ctx, url, opts.FormatID)...)
	case opts.Resolution != "":
		cmd = append(cmd, "-S", "res:"+opts.Resolution)
	}

	outputDir := opts.OutputPath
	if outputDir == "" {
		outputDir = workingDir()
	}
	template := singleOutputTemplate
	if opts.IsPlaylist {
		template = playlistOutputTemplate
	}
	cmd = append(cmd, "-o", filepath.Join(outputDir, template))

	cmd = append(cmd, "--force-overwrites")

	if opts.PlaylistItems != "" {
		cmd = append(cmd, "--playlist-items", opts.PlaylistItems)
	}

	if len(opts.SubtitleLangs) > 0 {
		codes := make([]string, 0, len(opts.SubtitleLangs))
		for _, sel := range opts.SubtitleLangs {
			codes = append(codes, ParseSubtitleLanguage(sel))
		}
		cmd = append(cmd, "--write-subs", "--sub-langs", strings.Join(codes, ","), "--write-auto-subs")
		if opts.MergeSubs {
			cmd = append(cmd, "--embed-subs")
		}
	}

	if opts.EnableSponsorBlock && len(opts.SponsorBlockCategories) > 0 {
		cmd = append(cmd, "--sponsorblock-remove", strings.Join(opts.SponsorBlockCategories, ","))
	}

	if opts.SaveDescription {
		cmd = append(cmd, "--write-description")
	}
	if opts.EmbedChapters {
		cmd = append(cmd, "--embed-chapters")
	}

	cmd = appendCookies(cmd, opts.CookiesFile, opts.BrowserCookies)

	if opts.RateLimit != "" {
		cmd = append(cmd, "-r", opts.RateLimit)
	}

	if opts.DownloadSection != "" {
		cmd = append(cmd, "--download-sections", opts.DownloadSection)
		if opts.ForceKeyframes {
			cmd = append(cmd, "--force-keyframes-at-cuts")
		}
	}

	return append(cmd, url)
}

// formatSelection picks "-f id" for audio-only formats and merges the best
// audio into anything else. Unknown ids are treated as video.
func (g *Gateway) formatSelection(ctx context.Context, url, formatID string) []string {
	id := StripDRC(formatID)

	format, found := findFormat(g.Formats(ctx, url), id)
	if !found {
		g.logger.WithFields(logger.Fields{
			"url":       url,
			"format_id": id,
		}).Warn("Format not found in extracted formats")
	}

	if found && IsAudioOnly(format) {
		return []string{"-f", id}
	}

	args := []string{"-f", id + "+bestaudio/best"}
	if ext := format.String("ext"); found && ext != "" {
		args = append(args, "--merge-output-format", ext)
	}
	return args
}

func findFormat(formats []Info, id string) (Info, bool) {
	for _, f := range formats {
		if f.String("format_id") == id {
			return f, true
		}
	}
	return nil, false
}

// StripDRC drops the "-drc" marker yt-dlp appends to dynamic range
// compressed audio variants, along with anything after it.
func StripDRC(formatID string) string {
	id, _, _ := strings.Cut(formatID, drcSuffix)
	return id
}

// IsAudioOnly reports formats without a video stream.
func IsAudioOnly(format Info) bool {
	if format.String("vcodec") == "none" {
		return true
	}
	return strings.Contains(strings.ToLower(format.String("format_note")), "audio only")
}

// ParseSubtitleLanguage returns the code of a "<code> - <label>" selection.
func ParseSubtitleLanguage(selection string) string {
	code, _, _ := strings.Cut(selection, " - ")
	return code
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
