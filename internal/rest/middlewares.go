package rest

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"

	"golang.org/x/time/rate"

	"github.com/ujjwalpandey922/meeting-schedular/pkg/models"
)

type ctxClaimsType string

const ctxClaimsStr ctxClaimsType = "claims"

var errTooManyRequests = errors.New("too many requests")

func (s *Server) jwtAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
			return
		}
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
			return
		}
		claims, err := s.auth.ParseToken(headerParts[1])
		if err != nil {
			s.writeResponse(w, http.StatusUnauthorized, models.ErrUnauthenticated)
			return
		}
		r = r.WithContext(context.WithValue(r.Context(), ctxClaimsStr, claims))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) getClaims(ctx context.Context) *models.Claims {
	claims, ok := ctx.Value(ctxClaimsStr).(*models.Claims)
	if !ok {
		return nil
	}
	return claims
}

// rateLimit throttles requests per authenticated user. Placed after jwtAuth
// so the limiter key is the user's email.
func (s *Server) rateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.RemoteAddr
		if claims := s.getClaims(r.Context()); claims != nil {
			key = claims.Email
		}
		if !s.limiters.allow(key) {
			s.writeResponse(w, http.StatusTooManyRequests, errTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type userLimiters struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	limiters map[string]*rate.Limiter
}

func newUserLimiters(limit rate.Limit, burst int) *userLimiters {
	return &userLimiters{
		limit:    limit,
		burst:    burst,
		limiters: make(map[string]*rate.Limiter),
	}
}

func (u *userLimiters) allow(key string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	lim, ok := u.limiters[key]
	if !ok {
		lim = rate.NewLimiter(u.limit, u.burst)
		u.limiters[key] = lim
	}
	return lim.Allow()
}
