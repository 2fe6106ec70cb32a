package handlers

import (
	"context"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"protocolotea/internal/auth"
	"protocolotea/internal/security"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const ProfessorContextKey ContextKey = "professor"

// Middleware holds dependencies for middleware functions
type Middleware struct {
	jwtSecret string
	jwtIssuer string
	limiter   *security.RateLimiter
}

// NewMiddleware creates a new middleware instance. limiter may be nil to disable rate limiting.
func NewMiddleware(jwtSecret, jwtIssuer string, limiter *security.RateLimiter) *Middleware {
	return &Middleware{
		jwtSecret: jwtSecret,
		jwtIssuer: jwtIssuer,
		limiter:   limiter,
	}
}

// RequireAuth is middleware that requires a valid bearer token
func (m *Middleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := auth.BearerToken(r.Header.Get("Authorization"))
		if token == "" {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "", nil)
			return
		}

		claims, err := auth.ParseToken(m.jwtSecret, m.jwtIssuer, token)
		if err != nil {
			respondWithError(w, http.StatusUnauthorized, ErrUnauthorized, "Rejected bearer token", err)
			return
		}

		ctx := context.WithValue(r.Context(), ProfessorContextKey, claims.ProfessorID)
		next(w, r.WithContext(ctx))
	}
}

// RateLimit limits requests per professor, or per client IP on unauthenticated routes
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if m.limiter == nil {
			next(w, r)
			return
		}

		key := "ip:" + security.GetClientIP(r)
		if professorID, ok := GetProfessorID(r.Context()); ok {
			key = fmt.Sprintf("professor:%d", professorID)
		}

		allowed, retryAfter := m.limiter.Allow(key)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			log.Printf("Rate limit exceeded for %s on %s", key, r.URL.Path)
			writeJSON(w, http.StatusTooManyRequests, errorBody{
				Error:   "rate_limited",
				Message: "Muitas tentativas, aguarde antes de tentar novamente",
			})
			return
		}
		next(w, r)
	}
}

// Logging middleware logs HTTP requests
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

// GetProfessorID retrieves the authenticated professor from the request context
func GetProfessorID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ProfessorContextKey).(int64)
	return id, ok && id > 0
}
