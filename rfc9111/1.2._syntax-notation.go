package rfc9111

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// §  1.2.2.  Delta Seconds
// §
// §     The delta-seconds rule specifies a non-negative integer, representing
// §     time in seconds.
// §
// §       delta-seconds  = 1*DIGIT
// §
// §     A recipient parsing a delta-seconds value and converting it to binary
// §     form ought to use an arithmetic type of at least 31 bits of non-
// §     negative integer range.  If a cache receives a delta-seconds value
// §     greater than the greatest integer it can represent, or if any of its
// §     subsequent calculations overflows, the cache MUST consider the value
// §     to be 2147483648 (2^31) or the greatest positive integer it can
// §     conveniently represent.
const maxDeltaSeconds = 2147483648

func deltaSeconds(secondsStr string) (time.Duration, error) {
	seconds, err := strconv.ParseUint(secondsStr, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return time.Second * maxDeltaSeconds, nil
	} else if err != nil {
		return 0, err
	}
	if seconds > maxDeltaSeconds {
		seconds = maxDeltaSeconds
	}
	return time.Second * time.Duration(seconds), nil
}

// §       IMF-fixdate  = day-name "," SP date1 SP time-of-day SP GMT
const imfDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// HttpDate parses an HTTP-date as defined in RFC 9110.
//
// §  5.6.7.  Date/Time Formats (RFC 9110)
// §
// §       HTTP-date    = IMF-fixdate / obs-date
// §
// §     A recipient that parses a timestamp value in an HTTP field MUST
// §     accept all three HTTP-date formats.  When a sender generates a field
// §     that contains one or more timestamps defined as HTTP-date, the sender
// §     MUST generate those timestamps in the IMF-fixdate format.
func HttpDate(dateStr string) (time.Time, error) {
	// §     HTTP-date is case sensitive.  Note that Section 4.2 of [CACHING]
	// §     relaxes this for cache recipients.
	str := strings.ToUpper(strings.TrimSpace(dateStr))
	if date, err := time.Parse(imfDateLayout, str); err == nil {
		return date, nil
	} else if date, obsErr := time.Parse(time.RFC850, str); obsErr == nil {
		return date, nil
	} else if date, obsErr := time.Parse(time.ANSIC, str); obsErr == nil {
		return date, nil
	} else {
		return time.Time{}, err
	}
}
