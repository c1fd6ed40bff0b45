package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"github.com/0xPolygon/relay-aggregator/aggregator"
	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/helper/common"
	"github.com/0xPolygon/relay-aggregator/jsonrpc"
)

// Server is the central manager of the relay aggregator node
type Server struct {
	logger hclog.Logger
	config *Config

	storage       storage.Storage
	aggregator    *aggregator.Aggregator
	subscriptions *jsonrpc.SubscriptionManager

	jsonrpcServer    *jsonrpc.JSONRPC
	prometheusServer *http.Server

	ddEnabled bool
}

// newFileLogger returns logger instance that writes all logs to a specified file.
// If log file can't be created, it returns an error
func newFileLogger(config *Config) (hclog.Logger, error) {
	logFileWriter, err := os.OpenFile(
		config.LogFilePath,
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0640,
	)
	if err != nil {
		return nil, fmt.Errorf("could not create or open log file, %w", err)
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       "relay",
		Level:      config.LogLevel,
		Output:     logFileWriter,
		JSONFormat: config.JSONLogFormat,
	}), nil
}

// newCLILogger returns minimal logger instance that sends all logs to standard output
func newCLILogger(config *Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "relay",
		Level:      config.LogLevel,
		JSONFormat: config.JSONLogFormat,
	})
}

// newLoggerFromConfig creates a new logger which logs to a specified file.
// If log file is not set it outputs to standard output ( console ).
// If log file is specified, and it can't be created the server command will error out
func newLoggerFromConfig(config *Config) (hclog.Logger, error) {
	if config.LogFilePath != "" {
		fileLoggerInstance, err := newFileLogger(config)
		if err != nil {
			return nil, err
		}

		return fileLoggerInstance, nil
	}

	return newCLILogger(config), nil
}

// NewServer creates a new relay aggregator node, using the passed in configuration
func NewServer(config *Config) (*Server, error) {
	logger, err := newLoggerFromConfig(config)
	if err != nil {
		return nil, fmt.Errorf("could not setup new logger instance, %w", err)
	}

	m := &Server{
		logger: logger.Named("server"),
		config: config,
	}

	m.logger.Info("Data dir", "path", config.DataDir)

	factory, ok := storageBackends[config.Storage]
	if !ok {
		return nil, fmt.Errorf("storage backend '%s' not found", config.Storage)
	}

	if config.Storage.isPersistent() {
		if err := common.SetupDataDir(config.DataDir, nil); err != nil {
			return nil, err
		}
	}

	if err := m.enableDataDogProfiler(); err != nil {
		return nil, err
	}

	if config.Telemetry != nil && config.Telemetry.PrometheusAddr != nil {
		if err := m.setupTelemetry(); err != nil {
			return nil, err
		}
	}

	m.storage, err = factory(config.DataDir, logger, config.PacketCacheSize)
	if err != nil {
		m.closeDataDogProfiler()

		return nil, fmt.Errorf("failed to open %s storage: %w", config.Storage, err)
	}

	m.subscriptions = jsonrpc.NewSubscriptionManager(logger, 0)

	notifier := aggregator.MultiNotifier{
		aggregator.NewLogNotifier(logger),
		m.subscriptions,
	}

	m.aggregator, err = aggregator.NewAggregator(
		logger,
		m.storage,
		notifier,
		&aggregator.Config{ConfirmOnce: config.ConfirmOnce},
	)
	if err != nil {
		_ = m.Close()

		return nil, err
	}

	if _, err := m.aggregator.Initialize(config.Admin, config.Relayers); err != nil {
		_ = m.Close()

		return nil, fmt.Errorf("failed to initialize aggregator: %w", err)
	}

	if err := m.setupJSONRPC(); err != nil {
		_ = m.Close()

		return nil, err
	}

	m.startPrometheusServer()

	return m, nil
}

func (s *Server) setupJSONRPC() error {
	conf := &jsonrpc.Config{
		Store:                    s.aggregator,
		Subscriptions:            s.subscriptions,
		Addr:                     s.config.JSONRPC.JSONRPCAddr,
		AccessControlAllowOrigin: s.config.JSONRPC.AccessControlAllowOrigin,
		BatchLengthLimit:         s.config.JSONRPC.BatchLengthLimit,
		WebSocketReadLimit:       s.config.JSONRPC.WebSocketReadLimit,
	}

	srv, err := jsonrpc.NewJSONRPC(s.logger, conf)
	if err != nil {
		return err
	}

	s.jsonrpcServer = srv

	return nil
}

// Aggregator returns the aggregator served by this node
func (s *Server) Aggregator() *aggregator.Aggregator {
	return s.aggregator
}

// JSONRPCAddr returns the address the JSON-RPC server listens on
func (s *Server) JSONRPCAddr() string {
	if s.jsonrpcServer == nil {
		return ""
	}

	return s.jsonrpcServer.Addr().String()
}

// Close closes the node and every service it started
func (s *Server) Close() error {
	var result error

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	if s.jsonrpcServer != nil {
		g.Go(s.jsonrpcServer.Close)
	}

	if s.prometheusServer != nil {
		g.Go(func() error {
			return s.prometheusServer.Shutdown(ctx)
		})
	}

	if err := g.Wait(); err != nil {
		result = multierror.Append(result, fmt.Errorf("failed to stop http servers: %w", err))
	}

	if s.subscriptions != nil {
		s.subscriptions.Close()
	}

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			result = multierror.Append(result, fmt.Errorf("failed to close storage: %w", err))
		}
	}

	s.closeDataDogProfiler()

	if result != nil {
		s.logger.Error("failed to close the node cleanly", "err", result)
	}

	return result
}
