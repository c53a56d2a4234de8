package middleware

import (
	"net"
	"net/http"

	"github.com/hadirin/hadirin-backend-go/internal/domain/audit"
)

// RequestMetadata stashes the caller's address and user agent in the request
// context so audit entries written downstream can carry them.
func RequestMetadata(next http.Handler) http.Handler {
	hfn := func(w http.ResponseWriter, r *http.Request) {
		ip := r.RemoteAddr
		if host, _, err := net.SplitHostPort(ip); err == nil {
			ip = host
		}

		ctx := audit.WithRequestMetadata(r.Context(), audit.RequestMetadata{
			IPAddress: ip,
			UserAgent: r.UserAgent(),
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	}
	return http.HandlerFunc(hfn)
}
