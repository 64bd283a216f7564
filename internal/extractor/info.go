package extractor

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"

	"github.com/lrstanley/go-ytdlp"
)

const (
	TypePlaylist   = "playlist"
	TypeMultiVideo = "multi_video"
)

const (
	FieldType              = "_type"
	FieldEntries           = "entries"
	FieldFormats           = "formats"
	FieldSubtitles         = "subtitles"
	FieldAutomaticCaptions = "automatic_captions"
	FieldThumbnails        = "thumbnails"
)

// Info is one JSON document printed by yt-dlp: a media item, or a playlist
// wrapper holding items under "entries". Accessors never modify it.
type Info map[string]any

func (i Info) Type() string {
	return i.String(FieldType)
}

func (i Info) IsPlaylist() bool {
	t := i.Type()
	return t == TypePlaylist || t == TypeMultiVideo
}

// String returns the value under key when it is a JSON string.
func (i Info) String(key string) string {
	if s, ok := i[key].(string); ok {
		return s
	}
	return ""
}

// Float returns the value under key when it is a JSON number.
func (i Info) Float(key string) (float64, bool) {
	switch v := i[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	}
	return 0, false
}

// Map returns the value under key when it is a JSON object.
func (i Info) Map(key string) map[string]any {
	switch v := i[key].(type) {
	case map[string]any:
		return v
	case Info:
		return v
	}
	return nil
}

func (i Info) Entries() []Info {
	return i.List(FieldEntries)
}

func (i Info) Formats() []Info {
	return i.List(FieldFormats)
}

func (i Info) Thumbnails() []Info {
	return i.List(FieldThumbnails)
}

// List returns the objects stored in the array under key. It returns nil
// when the key is absent or does not hold an array.
func (i Info) List(key string) []Info {
	switch v := i[key].(type) {
	case []Info:
		return v
	case []any:
		items := make([]Info, 0, len(v))
		for _, item := range v {
			switch m := item.(type) {
			case map[string]any:
				items = append(items, Info(m))
			case Info:
				items = append(items, m)
			}
		}
		return items
	}
	return nil
}

// Extracted decodes the document into the typed structure used by go-ytdlp.
func (i Info) Extracted() (*ytdlp.ExtractedInfo, error) {
	raw, err := json.Marshal(i)
	if err != nil {
		return nil, fmt.Errorf("encode info: %w", err)
	}

	var extracted ytdlp.ExtractedInfo
	if err := json.Unmarshal(raw, &extracted); err != nil {
		return nil, fmt.Errorf("decode extracted info: %w", err)
	}
	return &extracted, nil
}

// Subtitles lists manual and automatically generated subtitle tracks keyed
// by language code.
type Subtitles struct {
	Subtitles         map[string]any `json:"subtitles"`
	AutomaticCaptions map[string]any `json:"automatic_captions"`
}

func (s Subtitles) ManualLanguages() []string {
	return slices.Sorted(maps.Keys(s.Subtitles))
}

func (s Subtitles) AutomaticLanguages() []string {
	return slices.Sorted(maps.Keys(s.AutomaticCaptions))
}
