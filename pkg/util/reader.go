// Package util provides utility functions for file operations.
package util

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// OpenFile opens a file, automatically decompressing if it's gzip- or
// zstd-compressed (detected by filename suffix, not content sniffing).
// Returns the reader, a cleanup function (to close resources), and any error.
// The caller must call the cleanup function when done reading.
func OpenFile(path string) (io.Reader, func() error, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}

	switch {
	case IsGzipFile(path):
		gzReader, err := gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("open gzip %s: %w", path, err)
		}
		cleanup := func() error {
			gzReader.Close()
			return file.Close()
		}
		return gzReader, cleanup, nil

	case IsZstdFile(path):
		zr, err := zstd.NewReader(file)
		if err != nil {
			file.Close()
			return nil, nil, fmt.Errorf("open zstd %s: %w", path, err)
		}
		cleanup := func() error {
			zr.Close()
			return file.Close()
		}
		return zr, cleanup, nil
	}

	cleanup := func() error {
		return file.Close()
	}
	return file, cleanup, nil
}

// IsGzipFile returns true if the file path indicates gzip compression.
func IsGzipFile(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// IsZstdFile returns true if the file path indicates zstd compression.
func IsZstdFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".zst") || strings.HasSuffix(lower, ".zstd")
}

// StripCompression removes compression extensions (.gz, .zst, .zstd)
// from a path.
func StripCompression(path string) string {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".gz"):
		return path[:len(path)-3]
	case strings.HasSuffix(lower, ".zst"):
		return path[:len(path)-4]
	case strings.HasSuffix(lower, ".zstd"):
		return path[:len(path)-5]
	}
	return path
}

// BaseFormat extracts the format extension after stripping compression.
// e.g., "audit.json.gz" -> ".json", "audit.log" -> ".log"
func BaseFormat(path string) string {
	stripped := StripCompression(path)
	return strings.ToLower(filepath.Ext(stripped))
}
