package rfc9110

import "net/http"

// §  12.5.5.  Vary
// §
// §     The "Vary" header field in a response describes what parts of a
// §     request message, aside from the method and target URI, might have
// §     influenced the origin server's process for selecting the content of
// §     this response.
// §
// §       Vary = #( "*" / field-name )
// §
// §     A Vary field value is either the wildcard member "*" or a list of
// §     request field names, known as the selecting header fields, that might
// §     have had a role in selecting the representation for this response.
// §     Potential selecting header fields are not limited to fields defined
// §     by this specification.

// MergeVary returns the Vary field value of h extended with the given field
// names. Names already present (compared case-insensitively) are not added
// again, and the spelling of the first occurrence is kept.
//
// §     A list containing the member "*" signals that other aspects of the
// §     request might have played a role in selecting the response
// §     representation, possibly including aspects outside the message syntax
// §     (e.g., the client's network address).  A recipient will not be able
// §     to determine whether this response is appropriate for a later request
// §     without forwarding the request to the origin server.  A proxy MUST
// §     NOT generate "*" as a Vary field value.
func MergeVary(h http.Header, names ...string) string {
	merged := make([]string, 0)
	for _, name := range append(GetListHeader(h, "Vary"), names...) {
		if name == "" || ContainsFieldName(merged, name) {
			continue
		}
		merged = append(merged, name)
	}
	return JoinList(merged)
}

// §     For example, a response that contains
// §
// §     Vary: accept-encoding, accept-language
// §
// §     indicates that the origin server might have used the request's
// §     Accept-Encoding and Accept-Language header fields (or lack thereof)
// §     as determining factors while choosing the content for this response.
// §
// §     A Vary field containing a list of field names has two purposes:
// §
// §     1.  To inform cache recipients that they MUST NOT use this response
// §         to satisfy a later request unless the later request has the same
// §         values for the listed header fields as the original request
// §         (Section 4.1 of [CACHING]) or reuse of the response has been
// §         validated by the origin server.  In other words, Vary expands the
// §         cache key required to match a new request to the stored cache
// §         entry.
