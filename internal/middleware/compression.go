package middleware

import (
	stdgzip "compress/gzip"
	"io"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// CompressionConfig holds configuration for response compression
type CompressionConfig struct {
	CompressionLevel   int      // Gzip compression level (1-9, 9 is best compression)
	ExcludedPaths      []string // Path prefixes served as-is
	ExcludedExtensions []string // Already-compressed file types
}

// DefaultCompressionConfig returns the default compression configuration.
// The Prometheus endpoint negotiates its own encoding.
func DefaultCompressionConfig() CompressionConfig {
	return CompressionConfig{
		CompressionLevel: gzip.DefaultCompression,
		ExcludedPaths:    []string{"/metrics/prometheus"},
		ExcludedExtensions: []string{
			".png", ".jpg", ".jpeg", ".gif", ".webp", ".avif", ".ico",
			".woff", ".woff2", ".zip", ".gz", ".mp4",
		},
	}
}

// Compression returns the gzip middleware for config; an invalid level falls
// back to the default
func Compression(config CompressionConfig) gin.HandlerFunc {
	level := config.CompressionLevel
	if _, err := stdgzip.NewWriterLevel(io.Discard, level); err != nil {
		level = gzip.DefaultCompression
	}

	return gzip.Gzip(level,
		gzip.WithExcludedPaths(config.ExcludedPaths),
		gzip.WithExcludedExtensions(config.ExcludedExtensions),
	)
}
