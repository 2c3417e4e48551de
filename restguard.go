package restguard

import (
	"net/http"
	"net/http/httputil"
	"net/url"
	"sort"
	"strings"

	"github.com/always-cache/restguard/audit"
	"github.com/always-cache/restguard/pkg/namespace"
	hook "github.com/always-cache/restguard/pkg/response-writer-hook"
	"github.com/always-cache/restguard/rfc9110"
	"github.com/always-cache/restguard/rfc9111"

	"github.com/rs/zerolog"
)

// DefaultLogTag prefixes the blocked attempt log line.
const DefaultLogTag = "REST Guard"

type Config struct {
	// URL of the origin server.
	// Only needed when the guard is used as a reverse proxy (ServeHTTP).
	OriginURL url.URL
	// Hostname to use for HTTP requests and TLS negotiation.
	// Use if needed if e.g. the origin URL is just an IP address.
	OriginHost string
	// Transport used to reach the origin. http.DefaultTransport if nil.
	Transport http.RoundTripper
	// URL prefix of the REST API, "wp-json" if empty.
	RESTPrefix string
	// Additional rules identifying API requests.
	Namespaces namespace.Rules
	// Log blocked method override attempts.
	Debug bool
	// Tag of the blocked attempt log line, DefaultLogTag if empty.
	LogTag string
	// Do not send the host's no-cache header set on API responses.
	DisableNoCacheHeaders bool
	// Decides whether the requester is logged in. CookieAuthenticator if nil.
	Authenticator Authenticator
	// Optional store for blocked attempts.
	Audit audit.Store
	// Logger to use. A console logger is used if nil.
	Logger *zerolog.Logger
}

type Guard struct {
	namespaces   namespace.Rules
	debug        bool
	logTag       string
	noCache      bool
	auth         Authenticator
	audit        audit.Store
	log          zerolog.Logger
	reverseproxy *httputil.ReverseProxy
}

// CreateGuard initializes the guard instance.
func CreateGuard(config Config) *Guard {
	// use console logger if not specified in config
	var logger zerolog.Logger
	if config.Logger == nil {
		logger = zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	} else {
		logger = *config.Logger
	}
	logCtx := logger.With().Str("component", "restguard")
	if config.OriginURL.Host != "" {
		logCtx = logCtx.Str("origin", config.OriginURL.String())
	}

	g := &Guard{
		namespaces: append(namespace.Defaults(config.RESTPrefix), config.Namespaces...),
		debug:      config.Debug,
		logTag:     config.LogTag,
		noCache:    !config.DisableNoCacheHeaders,
		auth:       config.Authenticator,
		audit:      config.Audit,
		log:        logCtx.Logger(),
	}
	if g.logTag == "" {
		g.logTag = DefaultLogTag
	}
	if g.auth == nil {
		g.auth = CookieAuthenticator{}
	}
	if config.OriginURL.Host != "" {
		g.reverseproxy = g.createReverseProxy(config)
	}

	return g
}

// IsAPIRequest reports whether the request targets the REST API.
func (g *Guard) IsAPIRequest(r *http.Request) bool {
	return g.namespaces.Match(r)
}

// StripOverrideHeaders removes all method override headers from an API
// request, so that the router never sees them. Other requests are left alone.
// It returns the removed headers.
func (g *Guard) StripOverrideHeaders(r *http.Request) []audit.Attempt {
	if r == nil || r.Header == nil || !g.IsAPIRequest(r) {
		return nil
	}
	names := make([]string, 0)
	for name := range r.Header {
		if IsOverrideHeader(name) {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	sort.Strings(names)

	ip := ClientIP(r)
	uri := logURI(r)
	attempts := make([]audit.Attempt, 0, len(names))
	for _, name := range names {
		attempt := audit.NewAttempt(name, sanitizeText(strings.Join(r.Header[name], ", ")), ip, uri)
		// the key may not be canonical, so Header.Del would miss it
		delete(r.Header, name)
		g.logAttempt(attempt)
		g.recordAttempt(attempt)
		attempts = append(attempts, attempt)
	}
	return attempts
}

func (g *Guard) logAttempt(a audit.Attempt) {
	if !g.debug {
		return
	}
	g.log.Warn().
		Str("header", a.Header).
		Str("value", a.Value).
		Str("ip", a.IP).
		Str("uri", a.URI).
		Msgf("[%s] Blocked method override attempt - Header: %s, Value: %s, IP: %s, URI: %s",
			g.logTag, a.Header, a.Value, a.IP, a.URI)
}

func (g *Guard) recordAttempt(a audit.Attempt) {
	if g.audit == nil {
		return
	}
	if err := g.audit.Record(a); err != nil {
		g.log.Error().Err(err).Str("header", a.Header).Msg("Could not record override attempt")
	}
}

// FilterResponseHeaders decorates the headers of an API response: the
// override headers are added to Vary and, for anonymous requesters, caching
// by intermediaries is forbidden. Responses to other requests are unchanged.
func (g *Guard) FilterResponseHeaders(h http.Header, r *http.Request) {
	if h == nil || r == nil || !g.IsAPIRequest(r) {
		return
	}
	if g.noCache {
		setNoCacheHeaders(h)
	}

	h.Set("Vary", rfc9110.MergeVary(h, OverrideHeaders...))

	if !g.auth.Authenticated(r) {
		// keep edge caches from storing a possibly poisoned response
		h.Set("Cache-Control", anonymousCacheControl)
		h.Set("Pragma", "no-cache")
	}

	if rfc9111.SharedCacheMayReuse(h) {
		g.log.Debug().
			Str("uri", logURI(r)).
			Bool("pragma-no-cache", rfc9111.PragmaNoCache(h)).
			Msg("API response may be reused by shared caches")
	}
}

// FilterResponse applies FilterResponseHeaders to an origin response.
// It has the signature of httputil.ReverseProxy.ModifyResponse.
func (g *Guard) FilterResponse(res *http.Response) error {
	if res == nil || res.Header == nil || res.Request == nil {
		return nil
	}
	g.FilterResponseHeaders(res.Header, res.Request)
	return nil
}

// Middleware wraps a handler (usually the host's router) with the guard.
func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !g.IsAPIRequest(r) {
			next.ServeHTTP(w, r)
			return
		}
		g.StripOverrideHeaders(r)
		hw := hook.NewResponseWriter(w, func(h http.Header) {
			g.FilterResponseHeaders(h, r)
		})
		next.ServeHTTP(hw, r)
		// handlers that write nothing still get filtered headers
		if !hw.Written() {
			hw.WriteHeader(http.StatusOK)
		}
	})
}

// setNoCacheHeaders sets the host's standard no-cache header set.
func setNoCacheHeaders(h http.Header) {
	h.Set("Expires", noCacheExpires)
	h.Set("Cache-Control", noCacheCacheControl)
	h.Del("Last-Modified")
}

// logURI returns the sanitized request URI, or "unknown".
func logURI(r *http.Request) string {
	uri := r.RequestURI
	if uri == "" && r.URL != nil {
		uri = r.URL.RequestURI()
	}
	if uri = sanitizeText(uri); uri == "" {
		return "unknown"
	}
	return uri
}
