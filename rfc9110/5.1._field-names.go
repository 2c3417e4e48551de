package rfc9110

import "strings"

// FieldNameEqual reports whether two field names refer to the same field.
//
// §  5.1.  Field Names
// §
// §     A field name labels the corresponding field value as having the
// §     semantics defined by that name.  For example, the Date header field
// §     is defined in Section 6.6.1 as containing the origination timestamp
// §     for the message in which it appears.
// §
// §       field-name     = token
// §
// §     Field names are case-insensitive and ought to be registered within
// §     the "Hypertext Transfer Protocol (HTTP) Field Name Registry"; see
// §     Section 16.3.1.
func FieldNameEqual(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// ContainsFieldName reports whether names contains name, compared as field names.
func ContainsFieldName(names []string, name string) bool {
	for _, n := range names {
		if FieldNameEqual(n, name) {
			return true
		}
	}
	return false
}
