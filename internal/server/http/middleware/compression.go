package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DecompressRequest transparently handles gzip encoded requests and caps the
// body handlers read at maxBytes, inflated size for gzip requests. Reading past
// the cap fails with *http.MaxBytesError. Zero disables the cap.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Request.Body = limitBody(c, c.Request.Body, maxBytes)
			c.Next()
			return
		}

		originalBody := c.Request.Body
		reader, err := gzip.NewReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		c.Request.Body = limitBody(c, reader, maxBytes)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

func limitBody(c *gin.Context, body io.ReadCloser, maxBytes int64) io.ReadCloser {
	if maxBytes <= 0 || body == nil {
		return body
	}
	return http.MaxBytesReader(c.Writer, body, maxBytes)
}
