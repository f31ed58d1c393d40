package middlewares

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// RequestSizeLimitMiddleware caps request bodies at limit bytes. Campground forms carry
// their image uploads, so the limit covers the whole multipart body.
// Bodies announcing a larger Content-Length are refused up front with 413, streamed bodies
// fail on read once they cross the limit.
func RequestSizeLimitMiddleware(limit int64) func(http.Handler) http.Handler {
	tooLarge, _ := json.Marshal(map[string]string{
		"message": fmt.Sprintf("Request body exceeds %d bytes", limit),
	})

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_, _ = w.Write(tooLarge)
				return
			}

			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
