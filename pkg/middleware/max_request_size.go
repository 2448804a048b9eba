package middleware

import "net/http"

// MaxRequestSize caps request body size. Image upload endpoints get a higher
// multipart limit than plain JSON endpoints.
func MaxRequestSize(jsonLimit, multipartLimit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limit := jsonLimit
			if extractContentType(r.Header.Get("Content-Type")) == "multipart/form-data" {
				limit = multipartLimit
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}
