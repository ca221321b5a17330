package client

import (
	"net/http"
	"net/url"
)

// Client talks to the scheduler JSON API. The session cookie obtained by
// Login is kept in the cookie jar of the underlying http client.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

func New(funcs ...OptionFunc) *Client {
	opts := NewOptions(funcs...)
	return &Client{
		baseURL:    opts.BaseURL,
		httpClient: opts.HTTPClient,
	}
}
