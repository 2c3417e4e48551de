package rfc9110

import (
	"net/http"
	"strings"
)

// §  5.6.1.  Lists (#rule ABNF Extension)
// §
// §     A #rule extension to the ABNF rules of [RFC5234] is used to improve
// §     readability in the definitions of some header field values.
// §
// §     A construct "#" is defined, similar to "*", for defining comma-
// §     delimited lists of elements.  The full form is "<n>#<m>element"
// §     indicating at least <n> and at most <m> elements, each separated by a
// §     single comma (",") and optional whitespace (OWS, defined in
// §     Section 5.6.3).

// GetListHeader returns all members of a list-based field, across all field
// lines with that name, with surrounding whitespace removed.
//
// §  5.6.1.2.  Recipient Requirements
// §
// §     Empty elements do not contribute to the count of elements present.
// §     A recipient MUST parse and ignore a reasonable number of empty list
// §     elements: enough to handle common mistakes by senders that merge
// §     values, but not so much that they could be used as a denial-of-
// §     service mechanism.  In other words, a recipient MUST accept lists
// §     that satisfy the following syntax:
// §
// §       #element => [ element ] *( OWS "," OWS [ element ] )
func GetListHeader(header http.Header, field string) []string {
	list := make([]string, 0)
	for _, hdr := range header.Values(field) {
		for _, item := range strings.Split(hdr, ",") {
			if item = strings.TrimSpace(item); item != "" {
				list = append(list, item)
			}
		}
	}
	return list
}

// JoinList generates a list-based field value.
//
// §  5.6.1.1.  Sender Requirements
// §
// §     In any production that uses the list construct, a sender MUST NOT
// §     generate empty list elements.  In other words, a sender has to
// §     generate lists that satisfy the following syntax:
// §
// §       1#element => element *( OWS "," OWS element )
func JoinList(elements []string) string {
	nonEmpty := make([]string, 0, len(elements))
	for _, e := range elements {
		if e = strings.TrimSpace(e); e != "" {
			nonEmpty = append(nonEmpty, e)
		}
	}
	return strings.Join(nonEmpty, ", ")
}
