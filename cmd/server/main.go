package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/session"
	"github.com/dbx-labs/databricks-mcp/internal/tasks"
)

const (
	serverName    = "databricks-mcp"
	serverVersion = "0.1.0"
)

var (
	versionFlag = flag.Bool("version", false, "Print version and exit")
	debug       = flag.Bool("debug", false, "Enable debug logging")
	httpMode    = flag.Bool("http", false, "Enable HTTP/SSE transport instead of stdio")
)

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s v%s\n", serverName, serverVersion)
		os.Exit(0)
	}

	// Optional .env for local development; ignore a missing file.
	_ = godotenv.Load()

	logLevel := slog.LevelInfo
	if *debug {
		logLevel = slog.LevelDebug
	}

	// Logs go to stderr: stdout belongs to the stdio transport.
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	httpPort := os.Getenv("HTTP_PORT")
	if httpPort == "" {
		httpPort = "8080"
	}

	// Environment credentials are optional: HTTP clients can pass their own
	// per-request headers instead.
	envCreds, err := databricks.CredentialsFromEnv()
	if err != nil && !*httpMode {
		logger.Warn("No Databricks credentials in environment; stdio tool calls will fail until DATABRICKS_HOST and DATABRICKS_TOKEN are set")
	}

	logger.Info("Starting Databricks MCP server",
		"version", serverVersion,
		"debug", *debug,
		"http_mode", *httpMode,
		"http_port", httpPort,
	)

	sessions := session.NewRegistry()
	taskManager := tasks.NewManager(logger, tasks.Config{
		SweepInterval: config.TaskSweepInterval,
		Retention:     config.TaskRetention,
		PollAfter:     config.TaskPollAfter,
	})
	auditLogger := mcpserver.NewAuditLogger(logger)

	cfg := mcpserver.Config{
		Name:    serverName,
		Version: serverVersion,
	}
	srv := mcpserver.NewMCPServer(cfg, sessions, taskManager, envCreds, auditLogger, logger)
	defer srv.Close()

	taskManager.Start()
	defer taskManager.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if *httpMode {
			return srv.ServeHTTPWithLogger(":"+httpPort, logger)
		}
		return srv.ServeWithLogger(logger)
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down")
		return ctx.Err()
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}
