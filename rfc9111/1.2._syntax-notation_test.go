package rfc9111

import (
	"testing"
	"time"
)

func TestDeltaSecondsOverflow(t *testing.T) {
	d, err := deltaSeconds("99999999999999999999999")
	if err != nil {
		t.Fatalf("Error parsing delta seconds %+v", err)
	}
	if d != maxDeltaSeconds*time.Second {
		t.Fatalf("Delta seconds is %s", d)
	}
}

func TestHttpDateRFC850(t *testing.T) {
	_, err := HttpDate("Thursday, 18-Aug-50 02:01:18 GMT")
	if err != nil {
		t.Fatalf("Error parsing date %+v", err)
	}
}

func TestHttpDateTZCase(t *testing.T) {
	_, err := HttpDate("Thu, 18 Aug 2050 02:01:18 gMT")
	if err != nil {
		t.Fatalf("Error parsing date %+v", err)
	}
}

func TestHttpDateInvalid(t *testing.T) {
	if _, err := HttpDate("0"); err == nil {
		t.Fatal("Expected error for invalid date")
	}
}
