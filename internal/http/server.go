package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/cors"
	sloghttp "github.com/samber/slog-http"
)

type Server struct {
	opts    *Options
	handler http.Handler
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return errors.WithStack(err)
	}

	return s.Serve(ctx, listener)
}

func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	errs := make(chan error, 1)

	go func() {
		defer close(errs)

		slog.InfoContext(ctx, "http server listening", slog.String("address", listener.Addr().String()))

		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- errors.WithStack(err)
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func NewServer(funcs ...OptionFunc) *Server {
	opts := NewOptions(funcs...)

	mux := http.NewServeMux()

	for prefix, handler := range opts.Mounts {
		trimmed := strings.TrimSuffix(prefix, "/")
		if trimmed == "" {
			mux.Handle(prefix, handler)
			continue
		}

		mux.Handle(prefix, http.StripPrefix(trimmed, handler))
	}

	var handler http.Handler = mux

	if len(opts.AllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins:   opts.AllowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders:   []string{"Content-Type"},
			AllowCredentials: true,
		}).Handler(handler)
	}

	handler = sloghttp.Recovery(handler)
	handler = sloghttp.New(slog.Default())(handler)

	return &Server{
		opts:    opts,
		handler: handler,
	}
}
