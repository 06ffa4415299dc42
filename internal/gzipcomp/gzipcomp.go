package gzipcomp

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
)

// GzipCompressWriter allows to use http.ResponseWriter with gzip compression
type GzipCompressWriter struct {
	http.ResponseWriter
	zw          *gzip.Writer
	wroteHeader bool
}

func NewGzipCompressWriter(w http.ResponseWriter) *GzipCompressWriter {
	return &GzipCompressWriter{
		ResponseWriter: w,
		zw:             gzip.NewWriter(w),
	}
}

func (gw *GzipCompressWriter) Header() http.Header {
	return gw.ResponseWriter.Header()
}

func (gw *GzipCompressWriter) Write(b []byte) (int, error) {
	if !gw.wroteHeader {
		gw.WriteHeader(http.StatusOK)
	}
	return gw.zw.Write(b)
}

// WriteHeader выставляет Content-Encoding до отправки заголовков: тело
// в любом случае пройдёт через gzip.Writer
func (gw *GzipCompressWriter) WriteHeader(statusCode int) {
	if gw.wroteHeader {
		return
	}
	gw.wroteHeader = true
	gw.ResponseWriter.Header().Set("Content-Encoding", "gzip")
	gw.ResponseWriter.WriteHeader(statusCode)
}

func (gw *GzipCompressWriter) Close() error {
	return gw.zw.Close()
}

// GzipResponseWriter stores response before possible compression.
// Статус не отправляется сразу: заголовки должны уйти клиенту только
// после того, как решено, сжимать ли тело.
type GzipResponseWriter struct {
	w      http.ResponseWriter
	buffer *bytes.Buffer
	status int
}

func NewGzipResponseWriter(w http.ResponseWriter) *GzipResponseWriter {
	return &GzipResponseWriter{
		w:      w,
		buffer: bytes.NewBuffer(nil),
	}
}

// WriteTo отправляет накопленный статус и тело ответа
func (rw *GzipResponseWriter) WriteTo(wr http.ResponseWriter) {
	if rw.status != 0 {
		wr.WriteHeader(rw.status)
	}
	rw.buffer.WriteTo(wr)
}

func (rw *GzipResponseWriter) Header() http.Header {
	return rw.w.Header()
}

func (rw *GzipResponseWriter) Write(data []byte) (int, error) {
	return rw.buffer.Write(data)
}

func (rw *GzipResponseWriter) WriteHeader(statusCode int) {
	if rw.status == 0 {
		rw.status = statusCode
	}
}

// GzipCompressReader is ReadCloser with gzip decompression
type GzipCompressReader struct {
	io.ReadCloser
	zr *gzip.Reader
}

func NewGzipCompressReader(r io.ReadCloser) (*GzipCompressReader, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, err
	}

	return &GzipCompressReader{
		ReadCloser: r,
		zr:         zr,
	}, nil
}

func (gr *GzipCompressReader) Read(b []byte) (int, error) {
	return gr.zr.Read(b)
}

func (gr *GzipCompressReader) Close() error {
	if err := gr.ReadCloser.Close(); err != nil {
		return err
	}
	return gr.zr.Close()
}
