package rfc9111

import (
	"net/http"
	"time"
)

// §  4.2.1.  Calculating Freshness Lifetime
// §
// §     A cache can calculate the freshness lifetime (denoted as
// §     freshness_lifetime) of a response by evaluating the following rules
// §     and using the first match:
func freshnessLifetime(h http.Header, received time.Time) time.Duration {
	cc := ParseCacheControl(h.Values("Cache-Control"))
	// §  *  If the cache is shared and the s-maxage response directive
	// §     (Section 5.2.2.10) is present, use its value, or
	if val, ok := cc.SMaxAge(); ok {
		return val
	}
	// §  *  If the max-age response directive (Section 5.2.2.1) is present,
	// §     use its value, or
	if val, ok := cc.MaxAge(); ok {
		return val
	}
	// §  *  If the Expires response header field (Section 5.3) is present, use
	// §     its value minus the value of the Date response header field (using
	// §     the time the message was received if it is not present, as per
	// §     Section 6.6.1 of [HTTP]), or
	if h.Get("Expires") != "" {
		expires := Expires(h)
		date, err := HttpDate(h.Get("Date"))
		if err != nil {
			date = received
		}
		if lifetime := expires.Sub(date); lifetime > 0 {
			return lifetime
		}
		return 0
	}
	// §  *  Otherwise, no explicit expiration time is present in the response.
	// §     A heuristic freshness lifetime might be applicable; see
	// §     Section 4.2.2.
	return 0
}
