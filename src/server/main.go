package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/harshulchawla1408/Astrousers-sub000/logger"
	"github.com/harshulchawla1408/Astrousers-sub000/src/config"
	"github.com/harshulchawla1408/Astrousers-sub000/src/db"
	"github.com/harshulchawla1408/Astrousers-sub000/src/directory"
	"github.com/harshulchawla1408/Astrousers-sub000/src/presence"
	"github.com/harshulchawla1408/Astrousers-sub000/src/rabbitmq"
	"github.com/harshulchawla1408/Astrousers-sub000/src/repository"
	"github.com/harshulchawla1408/Astrousers-sub000/src/router"
	"github.com/harshulchawla1408/Astrousers-sub000/src/service"
	"github.com/harshulchawla1408/Astrousers-sub000/src/ws"
)

// Server represents the consult service process
type Server struct {
	config          *config.GlobalConfig
	database        *db.DB
	amqpPublisher   *rabbitmq.AMQPPublisher
	http            *http.Server
	shutdownHandler ShutdownHandlerInterface
}

// NewServer creates a new server instance and wires every component
func NewServer(cfg *config.GlobalConfig) (*Server, error) {
	// Initialize database connection
	database, err := db.NewDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	server := &Server{
		config:   cfg,
		database: database,
	}

	// Create and assign shutdown handler
	server.shutdownHandler = NewShutdownHandler(server)

	return server, nil
}

// Run starts the server with graceful shutdown using ShutdownHandler
func (s *Server) Run() error {
	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	serverDone := s.startServerGoroutine()

	return s.shutdownHandler.HandleShutdown(serverDone, osSignals)
}

// startServerGoroutine starts the HTTP server in a goroutine and returns a channel for errors
func (s *Server) startServerGoroutine() chan error {
	serverDone := make(chan error, 1)

	go func() {
		var audit service.AuditFeed
		if s.config.RabbitURL != "" {
			publisher, err := rabbitmq.NewAMQPPublisher(s.config.RabbitURL, rabbitmq.AuditExchange)
			if err != nil {
				serverDone <- fmt.Errorf("failed to connect to RabbitMQ: %w", err)
				return
			}
			s.amqpPublisher = publisher
			audit = rabbitmq.NewAuditFeed(publisher)
		} else {
			slog.Info("RABBITMQ_URL not set, audit feed disabled")
		}

		hub := ws.NewHub()
		dir := directory.NewHTTPDirectory(s.config.DirectoryAddr)
		registry := presence.NewRegistry(dir, hub)

		sessions := repository.NewSessionRepository(s.database)
		messages := repository.NewMessageRepository(s.database)
		ledger := repository.NewLedgerRepository(s.database)

		coordinator := service.NewCoordinator(sessions, messages, ledger, dir, registry, hub, audit)
		wallet := service.NewWalletService(ledger, audit)

		r := router.NewRouter(s.config, router.Deps{
			Coordinator: coordinator,
			Wallet:      wallet,
			Registry:    registry,
			Hub:         hub,
			Logger:      logger.Logger,
		})

		httpServer := &http.Server{
			Addr:    fmt.Sprintf("%s:%s", s.config.GetHost(), s.config.GetPort()),
			Handler: r,
		}
		s.http = httpServer

		slog.Info("Starting consult service",
			"host", s.config.GetHost(),
			"port", s.config.GetPort())

		serverDone <- s.startServer()
	}()

	return serverDone
}

// startServer starts the HTTP server and handles errors
func (s *Server) startServer() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
