package rfc9111

import (
	"net/http"
	"time"
)

// Expires returns the value of the Expires field.
// Invalid or missing values are returned as the zero time, which is in the past.
//
// §  5.3.  Expires
// §
// §     The "Expires" response header field gives the date/time after which
// §     the response is considered stale.
// §
// §       Expires = HTTP-date
// §
// §     A cache recipient MUST interpret invalid date formats, especially the
// §     value "0", as representing a time in the past (i.e., "already
// §     expired").
func Expires(h http.Header) time.Time {
	exp, err := HttpDate(h.Get("Expires"))
	if err != nil {
		return time.Time{}
	}
	return exp
}
