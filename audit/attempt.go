package audit

import (
	"time"

	"github.com/google/uuid"
)

// Attempt is a blocked method override attempt.
type Attempt struct {
	ID     string    `json:"id"`
	Time   time.Time `json:"time"`
	Header string    `json:"header"`
	Value  string    `json:"value"`
	IP     string    `json:"ip"`
	URI    string    `json:"uri"`
}

// NewAttempt creates an attempt with a fresh ID, stamped with the current time.
func NewAttempt(header, value, ip, uri string) Attempt {
	return Attempt{
		ID:     uuid.NewString(),
		Time:   time.Now().UTC(),
		Header: header,
		Value:  value,
		IP:     ip,
		URI:    uri,
	}
}
