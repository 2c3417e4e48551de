// Package rfc9111 implements the parts of HTTP Caching (RFC 9111) that the
// guard needs in order to reason about how shared caches will treat a
// response. The RFC text is quoted with `§` markers next to the code
// implementing it.
package rfc9111

import (
	"net/http"
	"time"
)

// SharedCacheMayReuse reports whether a shared cache (CDN, reverse proxy)
// would be allowed to store the response with the given header fields and
// serve it to other clients without first validating it with the origin.
func SharedCacheMayReuse(h http.Header) bool {
	return sharedCacheMayStore(h) && freshnessLifetime(h, time.Now()) > 0 &&
		!ParseCacheControl(h.Values("Cache-Control")).NoCache()
}
