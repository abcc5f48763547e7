// Command mcp-remind provides an MCP server for Apple Reminders over
// CalDAV.
//
// Usage:
//
//	./mcp-remind                 # Start MCP server (stdio)
//	./mcp-remind -config x.yaml  # Use a specific config file
//
// Environment:
//
//	REMINDKIT_CALDAV_USERNAME  Apple ID
//	REMINDKIT_CALDAV_PASSWORD  App-specific password
//	REMINDKIT_CALDAV_URL       CalDAV endpoint (default: iCloud)
//	REMINDKIT_CALDAV_CALENDAR  Default calendar collection path
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/namuan/remindkit"
	"github.com/namuan/remindkit/caldav"
	"github.com/namuan/remindkit/config"
	"github.com/namuan/remindkit/internal/mcpserver"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	store := caldav.NewClient(cfg.CalDAV.URL, cfg.CalDAV.Username, cfg.CalDAV.Password,
		caldav.WithCalendar(cfg.CalDAV.Calendar),
		caldav.WithTimeout(cfg.HTTPTimeout()),
		caldav.WithLogger(logger),
	)
	client := remindkit.New(store)

	s := mcpserver.NewServer(client, logger)

	logger.Info("starting MCP server", zap.String("endpoint", cfg.CalDAV.URL))
	if err := server.ServeStdio(s.MCPServer()); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

// newLogger builds a production logger writing to stderr, leaving stdout
// free for the MCP stdio transport.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
