package middleware

import (
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"
)

// RateLimit holds each outgoing request until limiter grants a token or
// the request context is done.
func RateLimit(limiter *rate.Limiter) resty.RequestMiddleware {
	return func(c *resty.Client, r *resty.Request) error {
		return limiter.Wait(r.Context())
	}
}
