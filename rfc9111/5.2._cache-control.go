package rfc9111

import (
	"strings"
	"time"
)

// CacheControl implements parsing of the "Cache-Control" header (/field).
//
// §  5.2.  Cache-Control
// §
// §     The "Cache-Control" header field is used to list directives for
// §     caches along the request/response chain.  Cache directives are
// §     unidirectional, in that the presence of a directive in a request does
// §     not imply that the same directive is present or copied in the
// §     response.
// §
// §     [...] Cache directives are identified by a token, to be compared
// §     case-insensitively, and have an optional argument that can use both
// §     token and quoted-string syntax.
// §
// §       Cache-Control   = #cache-directive
// §
// §       cache-directive = token [ "=" ( token / quoted-string ) ]
type CacheControl struct {
	directives map[string]string
	order      []string
}

// Get returns the value (/argument) of the specified directive,
// along with a boolean indicating whether this directive is present
func (c CacheControl) Get(directive string) (string, bool) {
	val, ok := c.directives[getCacheControlDirectiveName(directive)]
	return val, ok
}

// HasDirective returns whether the specified directive is present
func (c CacheControl) HasDirective(directive string) bool {
	_, ok := c.Get(directive)
	return ok
}

// Directives returns the directive names in the order they first appeared.
func (c CacheControl) Directives() []string {
	return append([]string(nil), c.order...)
}

// ParseCacheControl takes Cache-Control headers as a slice of strings
// and returns an instance of `CacheControl`.
func ParseCacheControl(headers []string) CacheControl {
	cc := CacheControl{directives: make(map[string]string)}
	// note setting map values like this means last defined directive wins
	for _, header := range headers {
		// "#" means comma-separated list
		for _, directive := range strings.Split(header, ",") {
			directive = strings.TrimSpace(directive)
			if directive == "" {
				continue
			}
			parts := strings.SplitN(directive, "=", 2)
			name := getCacheControlDirectiveName(parts[0])
			var arg string
			if len(parts) > 1 {
				arg = getCacheControlDirectiveArgument(parts[1])
			}
			if _, seen := cc.directives[name]; !seen {
				cc.order = append(cc.order, name)
			}
			cc.directives[name] = arg
		}
	}
	return cc
}

// getCacheControlDirectiveName returns a normalized name for the given directive.
func getCacheControlDirectiveName(token string) string {
	// §  [...] to be compared case-insensitively [...]
	return strings.ToLower(strings.TrimSpace(token))
}

// getCacheControlDirectiveArgument returns the directive argument in token form,
// i.e. it converts the argument from "quoted-string" to "token" form if needed.
func getCacheControlDirectiveArgument(arg string) string {
	// §  [...] argument that can use both token and quoted-string syntax. [...]
	return strings.Trim(strings.TrimSpace(arg), "\"")
}

// MaxAge returns "max-age" as a duration, along with a boolean indicating
// whether the "max-age" directive was present.
//
// §  5.2.2.1.  max-age
// §
// §     The max-age response directive indicates that the response is to be
// §     considered stale after its age is greater than the specified number
// §     of seconds.
func (c CacheControl) MaxAge() (time.Duration, bool) {
	return c.getDeltaSeconds("max-age")
}

// §  5.2.2.4.  no-cache
// §
// §     The no-cache response directive, in its unqualified form (without an
// §     argument), indicates that the response MUST NOT be used to satisfy
// §     any other request without forwarding it for validation and receiving
// §     a successful response; see Section 4.3.
func (c CacheControl) NoCache() bool {
	return c.HasDirective("no-cache")
}

// §  5.2.2.5.  no-store
// §
// §     The no-store response directive indicates that a cache MUST NOT store
// §     any part of either the immediate request or the response and MUST NOT
// §     use the response to satisfy any other request.
func (c CacheControl) NoStore() bool {
	return c.HasDirective("no-store")
}

// §  5.2.2.7.  private
// §
// §     The unqualified private response directive indicates that a shared
// §     cache MUST NOT store the response (i.e., the response is intended for
// §     a single user).
func (c CacheControl) Private() bool {
	return c.HasDirective("private")
}

// §  5.2.2.9.  public
// §
// §     The public response directive indicates that a cache MAY store the
// §     response even if it would otherwise be prohibited, subject to the
// §     constraints defined in Section 3.
func (c CacheControl) Public() bool {
	return c.HasDirective("public")
}

// SMaxAge returns "s-maxage" as a duration.
//
// §  5.2.2.10.  s-maxage
// §
// §     The s-maxage response directive indicates that, for a shared cache,
// §     the maximum age specified by this directive overrides the maximum age
// §     specified by either the max-age directive or the Expires header
// §     field.
func (c CacheControl) SMaxAge() (time.Duration, bool) {
	return c.getDeltaSeconds("s-maxage")
}

// getDeltaSeconds returns the "delta-seconds" as `time.Duration`,
// as well as a boolean indicating whether the directive was set.
// Invalid arguments are reported as a zero duration, i.e. already stale.
func (c CacheControl) getDeltaSeconds(directive string) (time.Duration, bool) {
	secondsStr, ok := c.Get(directive)
	if !ok {
		return 0, false
	}
	d, err := deltaSeconds(secondsStr)
	if err != nil {
		return 0, true
	}
	return d, true
}
