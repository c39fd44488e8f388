// Package middleware provides the HTTP middleware chain of the blend service.
package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// Compression gzips responses for clients that accept it and inflates
// gzip-encoded request bodies, which keeps large candidate lists and label
// imports small on the wire. /metrics negotiates its own encoding; swagger
// is left alone.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/metrics", "/swagger"}),
		gzip.WithDecompressFn(gzip.DefaultDecompressHandle),
	)
}
