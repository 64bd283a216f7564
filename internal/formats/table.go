package formats

import "github.com/muratoffalex/ytsage/internal/extractor"

type Row struct {
	FormatID   string
	Extension  string
	Quality    string
	Resolution string
	FPS        string
	Size       string
	Codec      string
	Audio      string
}

func (r Row) Cells() []string {
	return []string{r.FormatID, r.Extension, r.Quality, r.Resolution, r.FPS, r.Size, r.Codec, r.Audio}
}

func Headers(t Translator) []string {
	return []string{
		t.Localize("formats.format_id", nil),
		t.Localize("formats.extension", nil),
		t.Localize("formats.quality", nil),
		t.Localize("formats.resolution", nil),
		t.Localize("formats.fps", nil),
		t.Localize("formats.size", nil),
		t.Localize("formats.codec", nil),
		t.Localize("formats.audio", nil),
	}
}

// Rows filters and orders all, then renders one row per kept format.
func Rows(all []extractor.Info, video, audio bool, t Translator) []Row {
	filtered := Filter(all, video, audio)
	rows := make([]Row, 0, len(filtered))
	for _, f := range filtered {
		res := f.String("resolution")
		switch {
		case !IsVideo(f):
			res = t.Localize("formats.audio_only_resolution", nil)
		case res == "":
			res = t.Localize("formats.not_available", nil)
		}
		rows = append(rows, Row{
			FormatID:   f.String("format_id"),
			Extension:  f.String("ext"),
			Quality:    QualityLabel(f, t),
			Resolution: res,
			FPS:        FPSLabel(f, t),
			Size:       SizeLabel(f, t),
			Codec:      CodecLabel(f, t),
			Audio:      AudioStatus(f, t),
		})
	}
	return rows
}
