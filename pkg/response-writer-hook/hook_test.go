package hook

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHookRunsOnceBeforeHeaders(t *testing.T) {
	calls := 0
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, func(h http.Header) {
		calls++
		h.Set("X-Hooked", "yes")
	})

	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusTeapot)
	w.Write([]byte("short and stout"))
	w.Write([]byte("!"))

	if calls != 1 {
		t.Fatalf("Hook called %d times", calls)
	}
	if rr.Code != http.StatusTeapot || w.StatusCode() != http.StatusTeapot {
		t.Fatalf("Status code is %d", rr.Code)
	}
	if rr.Header().Get("X-Hooked") != "yes" {
		t.Fatal("Header not set by hook")
	}
	if body := rr.Body.String(); body != "short and stout!" {
		t.Fatalf("Body is %s", body)
	}
}

func TestHookOnImplicitStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, func(h http.Header) {
		h.Set("X-Hooked", "yes")
	})

	w.Write([]byte("Hello world"))

	if rr.Code != http.StatusOK {
		t.Fatalf("Status code is %d", rr.Code)
	}
	if rr.Result().Header.Get("X-Hooked") != "yes" {
		t.Fatal("Header not set by hook")
	}
}

func TestHookSeesHandlerHeaders(t *testing.T) {
	rr := httptest.NewRecorder()
	var seen string
	w := NewResponseWriter(rr, func(h http.Header) {
		seen = h.Get("Vary")
	})

	w.Header().Set("Vary", "Accept")
	w.Flush()

	if seen != "Accept" {
		t.Fatalf("Hook saw Vary %q", seen)
	}
	if !rr.Flushed {
		t.Fatal("Not flushed")
	}
}

func TestInformationalStatusDoesNotRunHook(t *testing.T) {
	calls := 0
	rr := httptest.NewRecorder()
	w := NewResponseWriter(rr, func(h http.Header) {
		calls++
	})

	w.WriteHeader(http.StatusEarlyHints)
	if calls != 0 {
		t.Fatal("Hook ran on informational status")
	}
	w.WriteHeader(http.StatusOK)
	if calls != 1 {
		t.Fatalf("Hook called %d times", calls)
	}
}
