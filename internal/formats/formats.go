// Package formats turns the formats reported by yt-dlp into the rows of a
// format selection table: filtering, quality ordering and display labels.
package formats

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/muratoffalex/ytsage/internal/extractor"
)

// Translator resolves display labels. *service.Localizer implements it.
type Translator interface {
	Localize(messageID string, data map[string]any) string
}

const noCodec = "none"

func IsVideo(f extractor.Info) bool {
	return f.String("vcodec") != noCodec
}

// HasAudio reports whether the format carries an audio stream. A missing
// acodec is not treated as "none".
func HasAudio(f extractor.Info) bool {
	return f.String("acodec") != noCodec
}

func hasSize(f extractor.Info) bool {
	_, ok := f.Float("filesize")
	return ok
}

// Filter keeps video formats, audio-only formats, or both. Formats of
// unknown size are dropped. The result is ordered by quality, best first.
func Filter(all []extractor.Info, video, audio bool) []extractor.Info {
	var filtered []extractor.Info
	if video {
		for _, f := range all {
			if IsVideo(f) && hasSize(f) {
				filtered = append(filtered, f)
			}
		}
	}
	if audio {
		for _, f := range all {
			if extractor.IsAudioOnly(f) && HasAudio(f) && hasSize(f) {
				filtered = append(filtered, f)
			}
		}
	}

	slices.SortStableFunc(filtered, func(a, b extractor.Info) int {
		qa, qb := Quality(a), Quality(b)
		switch {
		case qa > qb:
			return -1
		case qa < qb:
			return 1
		}
		return 0
	})
	return filtered
}

// Quality is the sort key of a format: frame height for video, audio
// bitrate for audio-only formats.
func Quality(f extractor.Info) float64 {
	if IsVideo(f) {
		return float64(Height(f))
	}
	abr, _ := f.Float("abr")
	return abr
}

// Height parses the height out of a "WIDTHxHEIGHT" resolution. It is 0
// when the resolution is missing or not of that shape.
func Height(f extractor.Info) int {
	res := f.String("resolution")
	if res == "" {
		return 0
	}
	parts := strings.Split(res, "x")
	h, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0
	}
	return h
}

func QualityLabel(f extractor.Info, t Translator) string {
	if !IsVideo(f) {
		abr, _ := f.Float("abr")
		switch {
		case abr >= 256:
			return t.Localize("formats.best_audio", nil)
		case abr >= 192:
			return t.Localize("formats.high_audio", nil)
		case abr >= 128:
			return t.Localize("formats.medium_audio", nil)
		default:
			return t.Localize("formats.low_audio", nil)
		}
	}

	h := Height(f)
	switch {
	case h >= 2160:
		return t.Localize("formats.best_4k", nil)
	case h >= 1440:
		return t.Localize("formats.best_2k", nil)
	case h >= 1080:
		return t.Localize("formats.high_1080p", nil)
	case h >= 720:
		return t.Localize("formats.high_720p", nil)
	case h >= 480:
		return t.Localize("formats.medium_480p", nil)
	default:
		return t.Localize("formats.low_quality", nil)
	}
}

// FPSLabel renders the frame rate. Rates below 1, as on storyboards, are
// not shown.
func FPSLabel(f extractor.Info, t Translator) string {
	fps, ok := f.Float("fps")
	if !ok || fps < 1 {
		return t.Localize("formats.not_available", nil)
	}
	return fmt.Sprintf("%.0ffps", fps)
}

func SizeLabel(f extractor.Info, t Translator) string {
	size, ok := f.Float("filesize")
	if !ok {
		return t.Localize("formats.not_available", nil)
	}
	return fmt.Sprintf("%.2f MB", size/1024/1024)
}

func CodecLabel(f extractor.Info, t Translator) string {
	na := t.Localize("formats.not_available", nil)
	if !IsVideo(f) {
		return valueOr(f.String("acodec"), na)
	}
	codec := valueOr(f.String("vcodec"), na)
	if HasAudio(f) {
		codec += " / " + valueOr(f.String("acodec"), na)
	}
	return codec
}

// AudioStatus tells whether audio comes with the format or has to be
// merged in from a separate stream.
func AudioStatus(f extractor.Info, t Translator) string {
	switch {
	case !IsVideo(f):
		return t.Localize("formats.audio_only", nil)
	case f.String("acodec") == noCodec:
		return t.Localize("formats.will_merge_audio", nil)
	default:
		return t.Localize("formats.has_audio", nil)
	}
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
