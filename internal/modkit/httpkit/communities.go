package httpkit

import (
	"net/http"

	pnet "inkarena/internal/platform/net"
)

// CommunityPort validates community context. Stub until we wire a real service.
type CommunityPort interface {
	Validate(r *http.Request, communityID string) error
}

// CommunityScope is middleware that validates the community ID from context using the port
func CommunityScope(p CommunityPort, write func(w http.ResponseWriter, status int, body any)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p == nil {
				next.ServeHTTP(w, r)
				return
			}
			tid := pnet.CommunityID(r.Context())
			if err := p.Validate(r, tid); err != nil {
				status, body := pnet.Error(err, pnet.RequestID(r.Context()))
				write(w, status, body)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
