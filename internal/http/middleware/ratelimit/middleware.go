package ratelimit

import (
	"fmt"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/time/rate"
)

type Options struct {
	TrustHeaders bool
	Interval     time.Duration
	MaxBurst     int
	CacheSize    int
	CacheTTL     time.Duration
	OnLimited    func(w http.ResponseWriter, r *http.Request)
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		TrustHeaders: false,
		Interval:     10 * time.Second,
		MaxBurst:     5,
		CacheSize:    1024,
		CacheTTL:     10 * time.Minute,
		OnLimited: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

func WithTrustHeaders(trust bool) OptionFunc {
	return func(opts *Options) {
		opts.TrustHeaders = trust
	}
}

// WithLimit allows maxBurst requests at once per client, refilled at one
// request per interval.
func WithLimit(interval time.Duration, maxBurst int) OptionFunc {
	return func(opts *Options) {
		opts.Interval = interval
		opts.MaxBurst = maxBurst
	}
}

func WithCache(size int, ttl time.Duration) OptionFunc {
	return func(opts *Options) {
		opts.CacheSize = size
		opts.CacheTTL = ttl
	}
}

func WithOnLimited(fn func(w http.ResponseWriter, r *http.Request)) OptionFunc {
	return func(opts *Options) {
		opts.OnLimited = fn
	}
}

// Middleware limits requests per remote address.
func Middleware(funcs ...OptionFunc) func(http.Handler) http.Handler {
	opts := NewOptions(funcs...)

	cache := expirable.NewLRU[string, *rate.Limiter](opts.CacheSize, nil, opts.CacheTTL)

	getLimiter := func(remoteAddr string) *rate.Limiter {
		limiter, exists := cache.Get(remoteAddr)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(opts.Interval), opts.MaxBurst)
			cache.Add(remoteAddr, limiter)
		}

		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := getLimiter(remoteAddr(r, opts.TrustHeaders))

			reservation := limiter.Reserve()
			if !reservation.OK() {
				opts.OnLimited(w, r)
				return
			}

			if delay := reservation.Delay(); delay > 0 {
				reservation.Cancel()

				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(delay.Seconds()))))
				opts.OnLimited(w, r)
				return
			}

			tokens := limiter.Tokens()

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.MaxBurst))
			w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%.0f", math.Max(0, math.Floor(tokens))))

			next.ServeHTTP(w, r)
		})
	}
}

func remoteAddr(r *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			ips := strings.Split(xff, ",")
			return strings.TrimSpace(ips[0])
		}

		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return ip
}
