package httpx

import (
	"context"
	"net/http"

	"github.com/valyala/fasthttp"

	"modboard/pkg/logger"
)

// httpx lets the service run its mux-built handler over either net/http or
// fasthttp, selected by configuration. The fasthttp path adapts requests
// into standard http.Request values so the rest of the stack stays
// transport-agnostic.

// Server is a minimal lifecycle wrapper over the selected transport.
type Server struct {
	addr     string
	handler  http.Handler
	frontend string

	netSrv  *http.Server
	fastSrv *fasthttp.Server
}

// NewServer builds a Server for the given frontend ("nethttp" default,
// or "fasthttp").
func NewServer(addr, frontend string, h http.Handler) *Server {
	return &Server{addr: addr, handler: h, frontend: frontend}
}

// ListenAndServe starts the selected transport and blocks until it stops.
func (s *Server) ListenAndServe() error {
	if s.frontend == "fasthttp" {
		logger.Info("http_frontend", "transport", "fasthttp", "addr", s.addr)
		s.fastSrv = &fasthttp.Server{Handler: FastHTTPAdapter(s.handler)}
		return s.fastSrv.ListenAndServe(s.addr)
	}
	logger.Info("http_frontend", "transport", "nethttp", "addr", s.addr)
	s.netSrv = &http.Server{Addr: s.addr, Handler: s.handler}
	return s.netSrv.ListenAndServe()
}

// ListenAndServeTLS starts the selected transport with TLS.
func (s *Server) ListenAndServeTLS(certFile, keyFile string) error {
	if s.frontend == "fasthttp" {
		logger.Info("http_frontend", "transport", "fasthttp", "addr", s.addr, "tls", true)
		s.fastSrv = &fasthttp.Server{Handler: FastHTTPAdapter(s.handler)}
		return s.fastSrv.ListenAndServeTLS(s.addr, certFile, keyFile)
	}
	logger.Info("http_frontend", "transport", "nethttp", "addr", s.addr, "tls", true)
	s.netSrv = &http.Server{Addr: s.addr, Handler: s.handler}
	return s.netSrv.ListenAndServeTLS(certFile, keyFile)
}

// Shutdown stops whichever transport is running.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.fastSrv != nil {
		return s.fastSrv.ShutdownWithContext(ctx)
	}
	if s.netSrv != nil {
		return s.netSrv.Shutdown(ctx)
	}
	return nil
}
