// Package namespace decides whether a request targets the host's REST API.
package namespace

import (
	"net/http"
	"strings"
)

// DefaultPrefix is the REST API URL prefix used when none is configured.
const DefaultPrefix = "wp-json"

// RouteQueryParam is the query parameter carrying the REST route when the
// host runs without pretty permalinks (`/?rest_route=/wp/v2/posts`).
const RouteQueryParam = "rest_route"

type Rules []Rule

// Rule matches requests on the fields that are set. A rule with no fields set
// matches nothing.
type Rule struct {
	// Substring of the request URI (path and query).
	Contains string `yaml:"contains"`
	// Prefix of the URL path.
	Prefix string `yaml:"prefix"`
	// Exact URL path.
	Path string `yaml:"path"`
	// Query parameters; an empty value only requires the parameter to be present.
	Query map[string]string `yaml:"query"`
}

// Defaults returns the rules for a REST API mounted under prefix.
// An empty prefix falls back to DefaultPrefix.
func Defaults(prefix string) Rules {
	prefix = strings.Trim(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Rules{
		// also covers "/<prefix>/"
		{Contains: "/" + prefix},
		{Query: map[string]string{RouteQueryParam: ""}},
	}
}

// Match reports whether any rule matches the request.
func (r Rules) Match(req *http.Request) bool {
	return r.Find(req) != nil
}

// Find returns the first rule matching the request, or nil.
func (r Rules) Find(req *http.Request) *Rule {
	if req == nil || req.URL == nil {
		return nil
	}
	for i := range r {
		if r[i].matches(req) {
			return &r[i]
		}
	}
	return nil
}

func (rule Rule) empty() bool {
	return rule.Contains == "" && rule.Prefix == "" && rule.Path == "" && len(rule.Query) == 0
}

func (rule Rule) matches(req *http.Request) bool {
	if rule.empty() {
		return false
	}
	if rule.Contains != "" && !containsURI(req, rule.Contains) {
		return false
	}
	if rule.Path != "" && rule.Path != req.URL.Path {
		return false
	}
	if rule.Prefix != "" && !strings.HasPrefix(req.URL.Path, rule.Prefix) {
		return false
	}
	if len(rule.Query) > 0 {
		qry := req.URL.Query()
		for name, value := range rule.Query {
			if value == "" && !qry.Has(name) {
				return false
			} else if value != "" && qry.Get(name) != value {
				return false
			}
		}
	}
	return true
}

// containsURI checks both the URI as sent by the client and the decoded
// path, so percent-encoded paths do not slip past the rule.
func containsURI(req *http.Request, substr string) bool {
	if req.RequestURI != "" && strings.Contains(req.RequestURI, substr) {
		return true
	}
	decoded := req.URL.Path
	if req.URL.RawQuery != "" {
		decoded += "?" + req.URL.RawQuery
	}
	return strings.Contains(decoded, substr)
}
