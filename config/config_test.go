package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/always-cache/restguard/pkg/namespace"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	filename := filepath.Join(t.TempDir(), "restguard.yml")
	if err := os.WriteFile(filename, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestLoadFile(t *testing.T) {
	filename := writeConfig(t, `
port: 9000
origin: https://blog.example.com
restPrefix: api
debug: true
forceNoCache: false
namespaces:
  - prefix: /graphql
  - query:
      rest_route: ""
`)
	config, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != 9000 || config.RESTPrefix != "api" || !config.Debug {
		t.Fatalf("Config is %+v", config)
	}
	if config.NoCacheHeaders() {
		t.Fatal("No-cache headers enabled")
	}
	want := namespace.Rules{
		{Prefix: "/graphql"},
		{Query: map[string]string{"rest_route": ""}},
	}
	if diff := cmp.Diff(want, config.Namespaces); diff != "" {
		t.Fatalf("namespaces mismatch (-want +got):\n%s", diff)
	}
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	filename := writeConfig(t, "origin: https://blog.example.com\n")
	t.Setenv("RESTGUARD_ORIGIN", "http://127.0.0.1:8081")
	t.Setenv("RESTGUARD_LOG_TAG", "Edge")

	config, err := Load(filename)
	if err != nil {
		t.Fatal(err)
	}
	if config.Origin != "http://127.0.0.1:8081" || config.LogTag != "Edge" {
		t.Fatalf("Config is %+v", config)
	}
	if config.Port != 8080 || !config.NoCacheHeaders() {
		t.Fatalf("Defaults lost: %+v", config)
	}
}

func TestOriginFromAddr(t *testing.T) {
	config := Default()
	config.Addr = "192.0.2.10"
	config.Host = "blog.example.com"
	u, host, err := config.OriginURL()
	if err != nil {
		t.Fatal(err)
	}
	if u.String() != "https://192.0.2.10" || host != "blog.example.com" {
		t.Fatalf("Origin is %s (%s)", u, host)
	}
}

func TestValidate(t *testing.T) {
	config := Default()
	if err := config.Validate(); !errors.Is(err, ErrNoOrigin) {
		t.Fatalf("Error is %v", err)
	}
	config.Origin = "blog.example.com"
	if err := config.Validate(); err == nil {
		t.Fatal("Relative origin accepted")
	}
	config.Origin = "https://blog.example.com"
	config.Port = 0
	if err := config.Validate(); !errors.Is(err, ErrInvalidPort) {
		t.Fatalf("Error is %v", err)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("Missing file accepted")
	}
}
