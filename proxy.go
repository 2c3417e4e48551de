package restguard

import (
	"crypto/tls"
	"net/http"
	"net/http/httputil"
)

// ServeHTTP implements the http.Handler interface.
// It proxies the request to the origin, stripping override headers on the way
// in and filtering API response headers on the way out.
func (g *Guard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if g.reverseproxy == nil {
		g.log.Error().Msg("No origin configured")
		http.Error(w, "No origin configured", http.StatusBadGateway)
		return
	}
	g.log.Trace().Msgf("proxying %s", r.URL.String())
	g.StripOverrideHeaders(r)
	g.reverseproxy.ServeHTTP(w, r)
}

func (g *Guard) createReverseProxy(config Config) *httputil.ReverseProxy {
	host := config.OriginURL.Host
	hostHeader := host
	transport := config.Transport
	if config.OriginHost != "" {
		hostHeader = config.OriginHost
		if transport == nil {
			transport = &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					ServerName: config.OriginHost,
				},
			}
		}
	}

	return &httputil.ReverseProxy{
		Director:       createDirector(config.OriginURL.Scheme, host, hostHeader),
		Transport:      transport,
		ModifyResponse: g.FilterResponse,
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			g.log.Error().Err(err).Str("url", r.URL.String()).Msg("Could not fetch response from origin")
			http.Error(w, "Could not connect to origin", http.StatusBadGateway)
		},
	}
}

func createDirector(scheme, host, hostHeader string) func(req *http.Request) {
	return func(req *http.Request) {
		req.URL.Scheme = scheme
		req.URL.Host = host
		if hostHeader != "" {
			req.Host = hostHeader
		}
	}
}
