// Package mcp serves the rental client as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/carrental/carrental/client"
	"github.com/carrental/carrental/internal/logger"
	"github.com/carrental/carrental/mcp/internal/handlers"
)

// config holds the MCP server settings. Environment variables use the
// CARRENTAL_MCP_ prefix; flags override them. Client settings (base URL,
// token, timeout) are read by client.LoadEnv.
type config struct {
	ServerName      string        `envconfig:"SERVER_NAME" default:"rental-mcp-server"`
	ServerVersion   string        `envconfig:"SERVER_VERSION" default:"0.1.0"`
	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":5001"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
	HTTPReadTimeout time.Duration `envconfig:"HTTP_READ_TIMEOUT" default:"5s"`
	HTTPIdleTimeout time.Duration `envconfig:"HTTP_IDLE_TIMEOUT" default:"120s"`
	Heartbeat       time.Duration `envconfig:"HEARTBEAT_INTERVAL" default:"30s"`
	ForceStdio      bool          `envconfig:"STDIO" default:"false"`
	ForceHTTP       bool          `envconfig:"HTTP" default:"false"`

	// Flag-only overrides of the client settings.
	APIURL string `ignored:"true"`
	Token  string `ignored:"true"`
}

// loadConfig loads configuration from environment variables and flags
func loadConfig(args []string) (*config, error) {
	var cfg config
	if err := envconfig.Process("CARRENTAL_MCP", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	fs := flag.NewFlagSet("rental-mcp-server", flag.ContinueOnError)
	fs.StringVar(&cfg.APIURL, "api-url", "", "Base URL of the rental API (default from CARRENTAL_API_BASE_URL)")
	fs.StringVar(&cfg.Token, "token", "", "Bearer token used for every tool call (default from CARRENTAL_TOKEN)")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "Listen address for the streamable HTTP transport")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug|info|warn|error")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds an MCP server exposing every rental tool backed by c.
func NewServer(c *client.Client, name, version string) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
	)

	registerers := []struct {
		name    string
		handler toolRegisterer
	}{
		{"car", handlers.NewCarHandler(c)},
		{"booking", handlers.NewBookingHandler(c)},
		{"notification", handlers.NewNotificationHandler(c)},
	}
	for _, r := range registerers {
		if err := r.handler.RegisterTools(s); err != nil {
			return nil, fmt.Errorf("register %s tools: %w", r.name, err)
		}
	}
	return s, nil
}

// RunMCPServer starts the MCP server configured from args and the environment.
func RunMCPServer(args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	log.Logger = logger.New(cfg.ServerName).Level(parseLogLevel(cfg.LogLevel))

	var opts []client.Option
	opts = append(opts, client.WithLogger(log.Logger))
	if cfg.Token != "" {
		opts = append(opts, client.WithToken(cfg.Token))
	}
	env, err := client.LoadEnv()
	if err != nil {
		return err
	}
	baseURL := env.APIBaseURL
	if cfg.APIURL != "" {
		baseURL = cfg.APIURL
	}
	rentalClient, err := client.New(baseURL, append(env.Options(), opts...)...)
	if err != nil {
		log.Error().Stack().Err(err).Msg("Failed to create client")
		return err
	}
	defer func() { _ = rentalClient.Close() }()
	log.Info().Str("api_url", rentalClient.BaseURL()).Msg("Client created")

	s, err := NewServer(rentalClient, cfg.ServerName, cfg.ServerVersion)
	if err != nil {
		return err
	}

	if shouldUseStdio(cfg) {
		// Stdio transport (launched by an MCP host)
		log.Info().Msg("Starting rental MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(s, cfg)
}

// serveHTTP serves the streamable HTTP transport until SIGINT or SIGTERM.
func serveHTTP(s *server.MCPServer, cfg *config) error {
	log.Info().Str("addr", cfg.HTTPAddr).Msg("Starting rental MCP server (Streamable HTTP)")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath("/mcp"),
		server.WithHeartbeatInterval(cfg.Heartbeat),
	)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      streamSrv,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: 0, // no deadline; SSE streams stay open
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)

		sig, ok := <-sigChan
		if !ok {
			return
		}
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	<-shutdownComplete
	log.Info().Msg("MCP server shutdown complete")
	return nil
}

// shouldUseStdio determines whether to use stdio transport based on environment
func shouldUseStdio(cfg *config) bool {
	if cfg.ForceStdio {
		return true
	}
	if cfg.ForceHTTP {
		return false
	}

	// Auto-detect: Use stdio if stdin is not a terminal (launched by another process)
	if fileInfo, err := os.Stdin.Stat(); err == nil {
		return (fileInfo.Mode() & os.ModeCharDevice) == 0
	}

	// Default to HTTP if detection fails
	return false
}
