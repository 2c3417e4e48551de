package restguard

import (
	"net/http"
	"strings"
)

// Authenticator decides whether a request comes from a logged-in user.
type Authenticator interface {
	Authenticated(r *http.Request) bool
}

// AuthenticatorFunc adapts a function to the Authenticator interface.
type AuthenticatorFunc func(r *http.Request) bool

func (f AuthenticatorFunc) Authenticated(r *http.Request) bool {
	return f(r)
}

// DefaultLoggedInCookiePrefix is the prefix of the host's login cookie.
const DefaultLoggedInCookiePrefix = "wordpress_logged_in_"

// CookieAuthenticator treats a request as authenticated when it carries an
// Authorization header, or a login cookie together with a REST nonce.
// The host ignores the login cookie on REST requests without a nonce, so such
// requests are anonymous.
type CookieAuthenticator struct {
	// Login cookie name prefix, DefaultLoggedInCookiePrefix if empty.
	CookiePrefix string
}

func (c CookieAuthenticator) Authenticated(r *http.Request) bool {
	if r.Header.Get("Authorization") != "" {
		return true
	}
	prefix := c.CookiePrefix
	if prefix == "" {
		prefix = DefaultLoggedInCookiePrefix
	}
	loggedIn := false
	for _, cookie := range r.Cookies() {
		if strings.HasPrefix(cookie.Name, prefix) && cookie.Value != "" {
			loggedIn = true
			break
		}
	}
	if !loggedIn {
		return false
	}
	return r.Header.Get("X-WP-Nonce") != "" || r.URL.Query().Get("_wpnonce") != ""
}
