package client

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
)

type Options struct {
	BaseURL    *url.URL
	HTTPClient *http.Client
}

type OptionFunc func(opts *Options)

func WithBaseURL(baseURL *url.URL) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

// WithHTTPClient replaces the default http client. Its cookie jar, if any,
// holds the session.
func WithHTTPClient(httpClient *http.Client) OptionFunc {
	return func(opts *Options) {
		opts.HTTPClient = httpClient
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	// Only fails with a non nil public suffix list
	jar, _ := cookiejar.New(nil)

	opts := &Options{
		BaseURL: &url.URL{
			Scheme: "http",
			Host:   "localhost:8080",
		},
		HTTPClient: &http.Client{
			Timeout: time.Minute,
			Jar:     jar,
			Transport: &RateLimitTransport{
				Base:        http.DefaultTransport,
				MaxRetries:  5,
				DefaultWait: time.Second,
			},
		},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}
