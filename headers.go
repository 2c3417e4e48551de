package restguard

import "strings"

// Method override headers. A client sending one of these asks the host to
// treat the request as if it used another HTTP verb.
const (
	HeaderHTTPMethodOverride = "X-HTTP-Method-Override"
	HeaderHTTPMethod         = "X-HTTP-Method"
	HeaderMethodOverride     = "X-Method-Override"
)

// OverrideHeaders lists the method override headers in the order they are
// added to the Vary header.
var OverrideHeaders = []string{
	HeaderHTTPMethodOverride,
	HeaderHTTPMethod,
	HeaderMethodOverride,
}

// Values of the host's standard no-cache header set.
const (
	noCacheExpires      = "Wed, 11 Jan 1984 05:00:00 GMT"
	noCacheCacheControl = "no-cache, must-revalidate, max-age=0, no-store, private"
)

// Cache-Control sent on API responses to anonymous requesters.
const anonymousCacheControl = "no-cache, must-revalidate, max-age=0"

// IsOverrideHeader reports whether name is one of the override headers in any
// of its transport representations: any letter case, "_" instead of "-", and
// the CGI form with an "HTTP_" prefix (e.g. HTTP_X_HTTP_METHOD_OVERRIDE).
func IsOverrideHeader(name string) bool {
	normalized := normalizeHeaderName(name)
	for _, h := range OverrideHeaders {
		if normalized == strings.ToLower(h) {
			return true
		}
	}
	return false
}

// normalizeHeaderName folds a header name the way CGI hosts do when they turn
// it into a server variable.
func normalizeHeaderName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.ReplaceAll(n, "_", "-")
	return strings.TrimPrefix(n, "http-")
}
