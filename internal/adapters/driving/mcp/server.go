package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/docchat/internal/logger"
)

// Version is reported to clients when no build version is set.
const Version = "0.1.0"

// serverName identifies docchat to MCP clients.
const serverName = "docchat"

// instructions is sent to clients during initialisation.
const instructions = `docchat holds one document conversation.
Call select_document with a file path, then upload_document so the backend
processes it, then ask_question. session_status reports the selected
document, the upload state and whether a question is still being answered.
Only one question is answered at a time; a second one is rejected.`

// shutdownTimeout bounds how long in-flight HTTP calls may finish.
const shutdownTimeout = 5 * time.Second

// Server exposes one docchat session over MCP.
type Server struct {
	ports   *Ports
	server  *mcp.Server
	version string
}

// NewServer creates a new MCP server with the given ports.
// An empty version falls back to Version.
func NewServer(ports *Ports, version ...string) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	v := Version
	if len(version) > 0 && version[0] != "" {
		v = version[0]
	}

	s := &Server{
		ports:   ports,
		version: v,
		server: mcp.NewServer(
			&mcp.Implementation{Name: serverName, Version: v},
			&mcp.ServerOptions{Instructions: instructions},
		),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	logger.Info("MCP server %s (%s) on stdio", serverName, s.version)
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// Handler returns the streamable HTTP handler for this server.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// RunHTTP serves over streamable HTTP on addr until ctx is cancelled.
func (s *Server) RunHTTP(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Warn("MCP server shutdown: %v", err)
		}
	}()

	logger.Info("MCP server %s (%s) on %s", serverName, s.version, addr)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
