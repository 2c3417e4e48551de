package rfc9111

import "net/http"

// sharedCacheMayStore checks the response-side conditions of section 3
// that apply to a shared cache.
// Request method, status code and request Authorization are not checked.
//
// §  3.  Storing Responses in Caches
// §
// §     A cache MUST NOT store a response to a request unless:
func sharedCacheMayStore(h http.Header) bool {
	cc := ParseCacheControl(h.Values("Cache-Control"))
	// §  *  the no-store cache directive is not present in the response (see
	// §     Section 5.2.2.5);
	if cc.NoStore() {
		return false
	}
	// §  *  if the cache is shared: the private response directive is either
	// §     not present or allows a shared cache to store a modified response;
	// §     see Section 5.2.2.7);
	if cc.Private() {
		return false
	}
	// §  *  the response contains at least one of the following:
	// §     -  a public response directive (see Section 5.2.2.9);
	// §     -  an Expires header field (see Section 5.3);
	// §     -  a max-age response directive (see Section 5.2.2.1);
	// §     -  if the cache is shared: an s-maxage response directive (see
	// §        Section 5.2.2.10);
	return cc.Public() ||
		h.Get("Expires") != "" ||
		cc.HasDirective("max-age") ||
		cc.HasDirective("s-maxage")
}
