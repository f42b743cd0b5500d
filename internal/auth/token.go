package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
)

// TokenMiddleware guards the API with a single static service token. There
// are no user accounts in this service; the token only keeps strangers from
// burning the deployment's upstream quota.
type TokenMiddleware struct {
	tokenHash  [sha256.Size]byte
	headerName string
	enabled    bool
}

func NewTokenMiddleware(token, headerName string) *TokenMiddleware {
	m := &TokenMiddleware{headerName: headerName}
	if token != "" {
		m.tokenHash = sha256.Sum256([]byte(token))
		m.enabled = true
	}
	return m
}

func (m *TokenMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next.ServeHTTP(w, r)
			return
		}

		got := sha256.Sum256([]byte(r.Header.Get(m.headerName)))
		if subtle.ConstantTimeCompare(got[:], m.tokenHash[:]) != 1 {
			writeError(w, http.StatusUnauthorized, "invalid service token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
