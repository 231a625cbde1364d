package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stake-plus/expertdesk/src/actions/core"
	"github.com/stake-plus/expertdesk/src/config"
	"github.com/stake-plus/expertdesk/src/consult"
	"github.com/stake-plus/expertdesk/src/events"
	"github.com/stake-plus/expertdesk/src/webserver"
)

var _ core.Module = (*Module)(nil)

// Module serves the consultation page and JSON API over HTTP.
type Module struct {
	cfg      config.WebConfig
	srv      *http.Server
	listener net.Listener
}

// NewModule builds the HTTP server; it does not bind until Start.
func NewModule(cfg config.WebConfig, svc *consult.Service, pub events.Publisher) (*Module, error) {
	if svc == nil {
		return nil, fmt.Errorf("web: service is nil")
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	return &Module{
		cfg: cfg,
		srv: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           webserver.New(cfg, svc, pub),
			ReadHeaderTimeout: 10 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}, nil
}

// Name implements actions.Module.
func (m *Module) Name() string { return "web" }

// Addr reports the bound address once started.
func (m *Module) Addr() string {
	if m.listener == nil {
		return m.srv.Addr
	}
	return m.listener.Addr().String()
}

// Start binds the listener and serves in the background. WriteTimeout stays
// unset; a consultation blocks for as long as the provider takes.
func (m *Module) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", m.srv.Addr)
	if err != nil {
		return fmt.Errorf("web: listen %s: %w", m.srv.Addr, err)
	}
	m.listener = ln

	go func() {
		if err := m.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("web: serve: %v", err)
		}
	}()
	log.Printf("web: listening on %s", ln.Addr())
	return nil
}

// Stop shuts the server down gracefully.
func (m *Module) Stop(ctx context.Context) {
	shutCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := m.srv.Shutdown(shutCtx); err != nil {
		log.Printf("web: shutdown: %v", err)
	}
}
