package server

import (
	"context"
	"os"

	"github.com/joshuakessell/club-ops-deploy-sub001/logger"
)

// ShutdownHandlerInterface defines the interface for handling graceful shutdown
type ShutdownHandlerInterface interface {
	// HandleShutdown orchestrates the shutdown process
	// Returns an error if shutdown encounters an issue
	HandleShutdown(serverDone chan error, osSignals chan os.Signal) error

	// ShutdownServer initiates server shutdown
	ShutdownServer()
}

// ShutdownHandler implements the ShutdownHandlerInterface
type ShutdownHandler struct {
	server *Server
}

// NewShutdownHandler creates a new shutdown handler
func NewShutdownHandler(server *Server) ShutdownHandlerInterface {
	return &ShutdownHandler{
		server: server,
	}
}

// HandleShutdown orchestrates graceful shutdown based on shutdown sources
func (h *ShutdownHandler) HandleShutdown(serverDone chan error, osSignals chan os.Signal) error {
	// Wait for one of two shutdown triggers:
	// 1. Server error/completion (serverDone)
	// 2. OS signal (SIGTERM/SIGINT from the host or user)
	select {
	case err := <-serverDone:
		logger.Logger.Info("Server stopped, initiating shutdown")
		close(osSignals)
		h.ShutdownServer()
		return h.handleServerError(err)

	case sig, ok := <-osSignals:
		if !ok {
			return nil
		}
		logger.Logger.WithField("signal", sig.String()).Info("Received OS signal, initiating shutdown")
		h.ShutdownServer()

		err := <-serverDone
		return h.handleServerError(err)
	}
}

// handleServerError handles shutdown when server stops
func (h *ShutdownHandler) handleServerError(err error) error {
	if err != nil {
		logger.Logger.WithField("error", err.Error()).Error("Service stopped with an error")
		return err
	}
	logger.Logger.Info("Service stopped cleanly")
	return nil
}

// ShutdownServer stops the HTTP surface first, then the transport
// supervisor, so no action can arrive for a state machine that is already
// torn down.
func (h *ShutdownHandler) ShutdownServer() {
	logger.Logger.Info("Shutting down server components...")

	if err := h.server.http.Shutdown(context.Background()); err != nil {
		logger.Logger.WithField("error", err.Error()).Error("Error during HTTP server shutdown")
	}

	if h.server.supervisor != nil {
		h.server.supervisor.Stop()
		logger.Logger.Info("Transport supervisor stopped")
	}

	logger.Logger.Info("Server shutdown complete")
}
