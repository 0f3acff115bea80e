// Package media validates and describes local video files before upload.
package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// File describes a validated local video file.
type File struct {
	Path      string
	Name      string
	Size      int64
	MediaType string // e.g. "video/mp4"
}

// Load stats and validates a video file: the extension must be in formats
// and the size must not exceed maxBytes. The media type is sniffed from
// content, falling back to the extension when sniffing is inconclusive.
func Load(path string, maxBytes int64, formats []string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat video: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a video file", path)
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !formatSupported(ext, formats) {
		return nil, fmt.Errorf("unsupported video format %q (supported: %s)", ext, strings.Join(formats, ", "))
	}
	if maxBytes > 0 && info.Size() > maxBytes {
		return nil, fmt.Errorf("video is %.2f MB, exceeds the %d MB limit",
			float64(info.Size())/float64(1<<20), maxBytes>>20)
	}

	return &File{
		Path:      path,
		Name:      filepath.Base(path),
		Size:      info.Size(),
		MediaType: detectMediaType(path, ext),
	}, nil
}

// Open returns a reader over the file contents for upload.
func (f *File) Open() (io.ReadCloser, error) {
	rc, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	return rc, nil
}

func formatSupported(ext string, formats []string) bool {
	for _, f := range formats {
		if strings.EqualFold(ext, f) {
			return true
		}
	}
	return false
}

// extMediaTypes backs the fallback when content sniffing fails or returns a
// generic type (e.g. a partially written file).
var extMediaTypes = map[string]string{
	"mp4":  "video/mp4",
	"avi":  "video/x-msvideo",
	"mov":  "video/quicktime",
	"mkv":  "video/x-matroska",
	"webm": "video/webm",
	"flv":  "video/x-flv",
}

func detectMediaType(path, ext string) string {
	if m, err := mimetype.DetectFile(path); err == nil && strings.HasPrefix(m.String(), "video/") {
		return m.String()
	}
	if mt, ok := extMediaTypes[ext]; ok {
		return mt
	}
	return "application/octet-stream"
}
