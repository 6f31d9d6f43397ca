package transport

import "net/http"

// WithSecurityHeaders adds standard HTTP security headers to the response.
// HSTS is only sent in production, where the service is behind HTTPS.
func WithSecurityHeaders(next http.Handler, isProduction bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// 1. Stop browsers from MIME-sniffing a JSON response into something executable
		h.Set("X-Content-Type-Options", "nosniff")

		// 2. Forbid framing (clickjacking)
		h.Set("X-Frame-Options", "DENY")

		// 3. Legacy XSS filter for older browsers
		h.Set("X-XSS-Protection", "1; mode=block")

		// 4. HSTS: production only, local runs are plain HTTP
		if isProduction {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		// 5. JSON only: nothing may be loaded if a response is rendered as HTML
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		// 6. Send only the origin to other sites
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next.ServeHTTP(w, r)
	})
}

// WithCORS answers preflight requests and sets the allowed origin. An empty
// origin disables CORS headers entirely.
func WithCORS(next http.Handler, allowedOrigin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if allowedOrigin != "" {
			h := w.Header()
			// Origin allowed to call the API ("*" for any)
			h.Set("Access-Control-Allow-Origin", allowedOrigin)
			// Methods and headers a preflight may ask for
			h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			// Browsers may cache the preflight for an hour
			h.Set("Access-Control-Max-Age", "3600")
			// Caches must key on Origin when it is not a wildcard
			if allowedOrigin != "*" {
				h.Add("Vary", "Origin")
			}
		}
		// Preflight ends here
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
