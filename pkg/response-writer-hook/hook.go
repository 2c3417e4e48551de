package hook

import (
	"bufio"
	"errors"
	"net"
	"net/http"
)

// ResponseWriter is a wrapper around http.ResponseWriter that runs a header
// hook exactly once, right before the status line and headers are sent.
// Handlers writing a body without calling WriteHeader get an implicit 200,
// just like with the underlying writer.
type ResponseWriter struct {
	rw          http.ResponseWriter
	before      func(http.Header)
	status      int
	wroteHeader bool
}

// NewResponseWriter returns a ResponseWriter calling before on the
// underlying header map before it is written.
func NewResponseWriter(w http.ResponseWriter, before func(http.Header)) *ResponseWriter {
	return &ResponseWriter{
		rw:     w,
		before: before,
	}
}

// Implementation of http.ResponseWriter
func (h *ResponseWriter) Header() http.Header {
	return h.rw.Header()
}

// Implementation of http.ResponseWriter
func (h *ResponseWriter) WriteHeader(statusCode int) {
	if h.wroteHeader {
		// let the underlying writer complain about superfluous calls
		h.rw.WriteHeader(statusCode)
		return
	}
	// informational responses are not the final header set
	if statusCode >= 100 && statusCode < 200 && statusCode != http.StatusSwitchingProtocols {
		h.rw.WriteHeader(statusCode)
		return
	}
	h.runHook()
	h.wroteHeader = true
	h.status = statusCode
	h.rw.WriteHeader(statusCode)
}

// Implementation of http.ResponseWriter
func (h *ResponseWriter) Write(b []byte) (int, error) {
	// write headers if not already written
	if !h.wroteHeader {
		h.WriteHeader(http.StatusOK)
	}
	return h.rw.Write(b)
}

// StatusCode returns the status code of the response, or 0 if not yet written.
func (h *ResponseWriter) StatusCode() int {
	return h.status
}

// Written reports whether the headers were sent or the connection hijacked.
func (h *ResponseWriter) Written() bool {
	return h.wroteHeader
}

// Flush implements http.Flusher if the underlying writer does.
func (h *ResponseWriter) Flush() {
	if !h.wroteHeader {
		h.WriteHeader(http.StatusOK)
	}
	if f, ok := h.rw.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack implements http.Hijacker if the underlying writer does.
// The hook runs first, since the caller takes over the connection.
func (h *ResponseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := h.rw.(http.Hijacker)
	if !ok {
		return nil, nil, errors.New("hijacking is not supported")
	}
	h.runHook()
	conn, brw, err := hj.Hijack()
	if err == nil {
		h.wroteHeader = true
	}
	return conn, brw, err
}

// Unwrap allows http.ResponseController to reach the underlying writer.
func (h *ResponseWriter) Unwrap() http.ResponseWriter {
	return h.rw
}

func (h *ResponseWriter) runHook() {
	if h.before != nil {
		before := h.before
		h.before = nil
		before(h.rw.Header())
	}
}
