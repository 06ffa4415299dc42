package middleware

import (
	"net/http"
	"strings"

	"github.com/univbot/schedule-system/internal/gzipcomp"
	"github.com/univbot/schedule-system/internal/logger"
)

// GzipCompressor is middleware compressor
type GzipCompressor struct {
	log logger.Logger
}

func NewGzipCompressor(log logger.Logger) *GzipCompressor {
	return &GzipCompressor{
		log: log,
	}
}

func (c *GzipCompressor) CompressHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentEncoding := r.Header.Get("Content-Encoding")
		if strings.Contains(contentEncoding, "gzip") {
			c.log.Debug("Detected gzip request body")

			var err error
			r.Body, err = gzipcomp.NewGzipCompressReader(r.Body)
			if err != nil {
				c.log.Errorf("Error setting gzip read buffer: %v", err)
				w.WriteHeader(http.StatusInternalServerError)
				return
			}

			defer r.Body.Close()
		}

		supportGzip := false
		for _, value := range r.Header.Values("Accept-Encoding") {
			if strings.Contains(value, "gzip") {
				supportGzip = true
				break
			}
		}

		if supportGzip {
			c.log.Debug("Detected gzip support")

			rw := gzipcomp.NewGzipResponseWriter(w)
			next.ServeHTTP(rw, r)

			contentType := rw.Header().Get("Content-Type")
			if strings.HasPrefix(contentType, "text/html") || strings.HasPrefix(contentType, "application/json") {
				cw := gzipcomp.NewGzipCompressWriter(w)
				defer cw.Close()

				rw.WriteTo(cw)
			} else {
				rw.WriteTo(w)
			}
		} else {
			next.ServeHTTP(w, r)
		}
	})
}
