package extractor

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/muratoffalex/ytsage/internal/logger"
)

const thumbnailBaseName = "thumbnail"

// ThumbnailExtensions is the order in which written thumbnails are looked up.
var ThumbnailExtensions = []string{"jpg", "jpeg", "png", "webp"}

// DownloadThumbnail writes the best thumbnail of url. With an empty
// outputPath the file lands in a fresh temporary directory. The extension
// of outputPath is ignored: yt-dlp picks it from the source image.
func (g *Gateway) DownloadThumbnail(ctx context.Context, url, outputPath string) (string, bool) {
	var dir, stem string
	ownDir := outputPath == ""
	if !ownDir {
		dir = filepath.Dir(outputPath)
		base := filepath.Base(outputPath)
		stem = strings.TrimSuffix(base, filepath.Ext(base))
	} else {
		tmp, err := os.MkdirTemp("", "ytsage-thumbnail-")
		if err != nil {
			g.logger.WithError(err).Error("Failed to create temporary directory")
			return "", false
		}
		dir, stem = tmp, thumbnailBaseName
	}

	args := []string{
		"--write-thumbnail",
		"--skip-download",
		"--no-warnings",
		"-o", filepath.Join(dir, stem+".%(ext)s"),
		url,
	}

	log := g.logger.WithFields(logger.Fields{
		"url":       url,
		"directory": dir,
	})

	res := g.run(ctx, g.timeouts.Thumbnail, args)
	if !res.Success() {
		log.WithFields(logger.Fields{
			"exit_code": res.ExitCode,
			"stderr":    res.Stderr,
		}).Error("Failed to download thumbnail")
		g.removeTempDir(dir, ownDir)
		return "", false
	}

	path, ok := findThumbnail(dir, stem, ownDir)
	if !ok {
		log.Error("Failed to download thumbnail: no file written")
		g.removeTempDir(dir, ownDir)
		return "", false
	}
	return path, true
}

// removeTempDir drops a directory created by DownloadThumbnail. On success
// it stays, as the returned file lives in it.
func (g *Gateway) removeTempDir(dir string, own bool) {
	if !own {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		g.logger.WithField("directory", dir).WithError(err).Warn("Failed to remove temporary directory")
	}
}

// findThumbnail probes dir for stem with each preferred extension. When
// anyExt is set, other extensions are accepted too, lexicographically.
func findThumbnail(dir, stem string, anyExt bool) (string, bool) {
	for _, ext := range ThumbnailExtensions {
		candidate := filepath.Join(dir, stem+"."+ext)
		if fileExists(candidate) {
			return candidate, true
		}
	}
	if !anyExt {
		return "", false
	}

	matches, err := filepath.Glob(filepath.Join(dir, stem+".*"))
	if err != nil {
		return "", false
	}
	slices.Sort(matches)
	for _, m := range matches {
		if fileExists(m) {
			return m, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
