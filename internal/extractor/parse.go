package extractor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrDecodeOutput = errors.New("failed to parse JSON output")

// parseOutput decodes the --dump-json output of yt-dlp. A single line is
// one media item. Several lines are playlist members, optionally preceded
// by a playlist header. Any undecodable line fails the whole output.
func parseOutput(stdout string) (Info, error) {
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	if len(lines) == 1 {
		return decodeLine(lines[0], 1)
	}

	docs := make([]any, 0, len(lines))
	for n, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		doc, err := decodeLine(line, n+1)
		if err != nil {
			return nil, err
		}
		docs = append(docs, map[string]any(doc))
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("%w: no documents", ErrDecodeOutput)
	}

	header := Info(docs[0].(map[string]any))
	if header.Type() == TypePlaylist {
		header[FieldEntries] = docs[1:]
		return header, nil
	}

	return Info{
		FieldEntries: docs,
		FieldType:    TypeMultiVideo,
	}, nil
}

func decodeLine(line string, n int) (Info, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(line), &doc); err != nil {
		return nil, fmt.Errorf("%w: line %d: %w", ErrDecodeOutput, n, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: line %d: not an object", ErrDecodeOutput, n)
	}
	return doc, nil
}
