package middlewares

import (
	"net/http"

	"github.com/unrolled/secure"
)

const hstsMaxAge = 63072000

// SecurityHeadersMiddleware locks the JSON API out of framing, sniffing and
// script execution. HSTS is only sent behind a TLS terminating proxy.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	sec := secure.New(secure.Options{
		FrameDeny:             true,
		ContentTypeNosniff:    true,
		BrowserXssFilter:      true,
		ContentSecurityPolicy: "default-src 'none'; frame-ancestors 'none'",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		STSSeconds:            hstsMaxAge,
		STSIncludeSubdomains:  true,
		SSLProxyHeaders:       map[string]string{"X-Forwarded-Proto": "https"},
	})
	return sec.Handler
}
