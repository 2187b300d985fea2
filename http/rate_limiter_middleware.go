package http

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"prospection-agent/errs"
	"prospection-agent/logger"
)

// RateLimit rejects clients whose bucket is empty with a 429 envelope. The
// client is identified by r.RemoteAddr, which only reflects forwarding
// headers when the router trusts a proxy.
func RateLimit(limiter *RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := clientIP(r)

			ok, retryIn := limiter.Allow(ip)
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retryIn.Seconds()))))
				logger.C(r.Context()).Warn().Str("client", ip).Msg("rate limit exceeded")
				RespondError(w, r, errs.TooManyRequestsf("rate limit exceeded"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RealIP leaves a bare address
		return r.RemoteAddr
	}
	return ip
}
