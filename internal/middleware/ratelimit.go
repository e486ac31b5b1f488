package middleware

import (
	"fmt"
	"net"
	"net/http"

	internal_errors "github.com/dailypush/dailypush/internal/errors"
	"github.com/dailypush/dailypush/internal/logger"
	"github.com/dailypush/dailypush/internal/utils"
)

type Limiter interface {
	Allow(key string) bool
}

var errTooManyRequests = &internal_errors.ErrorWithStatusCode{
	Message:    "Rate limit exceeded, try again later",
	StatusCode: http.StatusTooManyRequests,
}

// RateLimit throttles requests per identity. Requests whose identity cannot be
// determined are rejected.
func RateLimit(l Limiter, getIdentity func(r *http.Request) (string, error)) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := getIdentity(r)
			if err != nil {
				utils.WriteErrorAndStatusCode(w, internal_errors.Validation(err.Error()))
				return
			}
			if !l.Allow(identity) {
				logger.Log.Warn("rate limit exceeded", "identity", identity, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, errTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP reads the client address from RemoteAddr only. X-Real-IP and
// X-Forwarded-For are set by the client and are ignored.
func ClientIP(r *http.Request) (string, error) {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		ip = r.RemoteAddr
	}
	if net.ParseIP(ip) == nil {
		return "", fmt.Errorf("invalid IP address: %s", ip)
	}
	return ip, nil
}
