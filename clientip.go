package restguard

import (
	"net"
	"net/http"
	"strings"
)

// clientIPHeaders are checked in order before falling back to the peer address.
var clientIPHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// ClientIP returns the best guess of the client address, or "unknown".
// Forwarding headers can hold a list, only the first element is used.
func ClientIP(r *http.Request) string {
	for _, name := range clientIPHeaders {
		if v := r.Header.Get(name); v != "" {
			ip := strings.TrimSpace(strings.Split(v, ",")[0])
			if net.ParseIP(ip) != nil {
				return ip
			}
		}
	}
	if ip := getRequestSourceIp(r); net.ParseIP(ip) != nil {
		return ip
	}
	return "unknown"
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return strings.Trim(r.RemoteAddr, "[]")
}
