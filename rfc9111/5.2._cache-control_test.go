package rfc9111

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestMaxAge(t *testing.T) {
	cc := ParseCacheControl([]string{"max-age=60"})
	val, ok := cc.Get("max-age")
	if !ok {
		t.Fatal("Could not get directive")
	}
	if val != "60" {
		t.Fatalf("Value is %s", val)
	}
	if d, ok := cc.MaxAge(); !ok || d != time.Minute {
		t.Fatalf("max-age is %s", d)
	}
}

func TestReal(t *testing.T) {
	cc := ParseCacheControl([]string{"public, max-age=0, s-maxage=600"})
	if val, ok := cc.Get("public"); !ok || val != "" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
	if val, ok := cc.Get("max-age"); !ok || val != "0" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
	if val, ok := cc.Get("s-maxage"); !ok || val != "600" {
		t.Fatalf("val: '%s', ok: %v", val, ok)
	}
}

func TestLooseSyntax(t *testing.T) {
	cc := ParseCacheControl([]string{"No-Cache,must-revalidate ,, max-age=\"0\"", "private"})
	want := []string{"no-cache", "must-revalidate", "max-age", "private"}
	if diff := cmp.Diff(want, cc.Directives()); diff != "" {
		t.Fatalf("directives mismatch (-want +got):\n%s", diff)
	}
	if !cc.NoCache() || !cc.Private() || cc.NoStore() {
		t.Fatalf("Directives parsed wrong: %v", cc.Directives())
	}
	if d, ok := cc.MaxAge(); !ok || d != 0 {
		t.Fatalf("max-age is %s", d)
	}
}

func TestInvalidDeltaSecondsIsStale(t *testing.T) {
	cc := ParseCacheControl([]string{"max-age=soon"})
	if d, ok := cc.MaxAge(); !ok || d != 0 {
		t.Fatalf("max-age is %s, %v", d, ok)
	}
}
