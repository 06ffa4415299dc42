package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const jsonBody = `{"lessons":{"first_week":["Расписание на первую неделю:\n\n"],"second_week":[]}}`

func jsonHandler(status int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(status)
		w.Write([]byte(jsonBody))
	})
}

func gunzip(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer zr.Close()

	body, err := io.ReadAll(zr)
	require.NoError(t, err)
	return string(body)
}

// Сжатое тело обязано уходить вместе с заголовком Content-Encoding:
// статус ответа не должен отправляться клиенту до решения о сжатии
func TestGzipCompressorHeaderMatchesBody(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(jsonHandler(http.StatusOK))

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	assert.Equal(t, jsonBody, gunzip(t, rr.Body.Bytes()))
}

// Статус хендлера доезжает до клиента и при сжатии
func TestGzipCompressorPreservesStatus(t *testing.T) {
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(jsonHandler(http.StatusCreated))

	req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
}

func TestGzipCompressorPlainResponses(t *testing.T) {
	tests := []struct {
		name           string
		acceptEncoding string
		contentType    string
	}{
		{"NoGzipSupport", "", "application/json; charset=utf-8"},
		{"UnsupportedContentType", "gzip", "text/plain; charset=utf-8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(http.StatusOK)
				w.Write([]byte(jsonBody))
			})
			handler := NewGzipCompressor(&mockLogger{}).CompressHandler(inner)

			req := httptest.NewRequest(http.MethodGet, "/api/schedule", nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, req)

			require.Equal(t, http.StatusOK, rr.Code)
			assert.Empty(t, rr.Header().Get("Content-Encoding"))
			assert.Equal(t, jsonBody, rr.Body.String())
		})
	}
}

// Сжатое тело запроса распаковывается перед хендлером
func TestGzipCompressorRequestBody(t *testing.T) {
	var received string
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		received = string(body)
		w.WriteHeader(http.StatusOK)
	})
	handler := NewGzipCompressor(&mockLogger{}).CompressHandler(inner)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(`{"password":"secret-123"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/admin/login", &buf)
	req.Header.Set("Content-Encoding", "gzip")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"password":"secret-123"}`, received)
}
