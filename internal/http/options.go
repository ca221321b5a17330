package http

import "net/http"

type Options struct {
	Address        string
	BaseURL        string
	AllowedOrigins []string
	Mounts         map[string]http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Address: ":8080",
		BaseURL: "",
		Mounts:  map[string]http.Handler{},
	}
	for _, fn := range funcs {
		fn(opts)
	}
	return opts
}

// WithMount serves handler under prefix. The prefix, without its trailing
// slash, is stripped from the request path before reaching handler.
func WithMount(prefix string, handler http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Mounts[prefix] = handler
	}
}

func WithBaseURL(baseURL string) OptionFunc {
	return func(opts *Options) {
		opts.BaseURL = baseURL
	}
}

func WithAddress(addr string) OptionFunc {
	return func(opts *Options) {
		opts.Address = addr
	}
}

func WithAllowedOrigins(origins ...string) OptionFunc {
	return func(opts *Options) {
		opts.AllowedOrigins = origins
	}
}
