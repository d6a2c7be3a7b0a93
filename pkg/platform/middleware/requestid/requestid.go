package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"astroengine/pkg/requestcontext"
)

// Header carries the request ID in and out.
const Header = "X-Request-ID"

// maxInboundLength bounds caller-supplied IDs.
const maxInboundLength = 128

// Middleware reuses a caller-supplied request ID or mints a UUID, stores it in
// the context and echoes it on the response.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > maxInboundLength {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
