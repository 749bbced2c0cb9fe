package server

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joshuakessell/club-ops-deploy-sub001/logger"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/backend"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/clock"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/config"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/rabbitmq"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/router"
	"github.com/joshuakessell/club-ops-deploy-sub001/src/service"

	_ "github.com/joshuakessell/club-ops-deploy-sub001/src/docs"

	_ "github.com/swaggo/files"
	_ "github.com/swaggo/gin-swagger"
)

// Server wires the kiosk agent together: the state aggregate, the backend
// client, the transport supervisor and the local render API.
type Server struct {
	config          *config.GlobalConfig
	supervisor      *service.Supervisor
	http            *http.Server
	shutdownHandler ShutdownHandlerInterface
}

// NewServer creates a new server instance
func NewServer(cfg *config.GlobalConfig) (*Server, error) {
	log := logger.Logger

	state := service.NewState(clock.NewSystem())
	client := backend.NewClient(*cfg, log)
	reconciler := service.NewReconciler(state, log)
	source := rabbitmq.NewAMQPSource(cfg.AMQPURL(), config.ExchangeForLane(cfg.LaneID))

	supervisor := service.NewSupervisor(service.SupervisorConfig{
		GracePeriod:      cfg.GracePeriod,
		PollInterval:     cfg.PollInterval,
		ReconnectDelay:   cfg.ReconnectDelay,
		InventoryRefresh: cfg.InventoryRefresh,
	}, source, client, reconciler, state, log)

	dispatcher := service.NewDispatcher(state, client, log)

	server := &Server{
		config:     cfg,
		supervisor: supervisor,
		http: &http.Server{
			Addr:    fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
			Handler: router.NewRouter(cfg, state, dispatcher, log),
		},
	}
	server.shutdownHandler = NewShutdownHandler(server)

	return server, nil
}

// Run starts the supervisor and the HTTP server with graceful shutdown.
func (s *Server) Run() error {
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	s.supervisor.Start()
	serverDone := s.startServerGoroutine()

	return s.shutdownHandler.HandleShutdown(serverDone, osSignals)
}

// startServerGoroutine starts the HTTP server in a goroutine and returns a channel for errors
func (s *Server) startServerGoroutine() chan error {
	serverDone := make(chan error, 1)

	go func() {
		logger.Logger.WithField("addr", s.http.Addr).Info("Starting kiosk agent")
		serverDone <- s.startServer()
	}()

	return serverDone
}

func (s *Server) startServer() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
