package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"

	"github.com/quantplay/quantplay-go/internal/config"
	"github.com/quantplay/quantplay-go/internal/tools"
	"github.com/quantplay/quantplay-go/pkg/logger"
	"github.com/quantplay/quantplay-go/quantplay"
)

const serverVersion = "0.1.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load configuration: %v", err)
	}

	if err := logger.Init(cfg.Log); err != nil {
		log.Fatalf("init logging: %v", err)
	}

	opts := []quantplay.Option{}
	if cfg.BaseURL != "" {
		opts = append(opts, quantplay.WithBaseURL(cfg.BaseURL))
	}
	if cfg.TimeoutSeconds > 0 {
		opts = append(opts, quantplay.WithTimeout(cfg.Timeout()))
	}

	// The one process-wide client; every tool call goes through it.
	client, err := quantplay.NewClient(cfg.APIKey, opts...)
	if err != nil {
		log.Fatalf("create QuantPlay client: %v", err)
	}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "quantplay",
		Version: serverVersion,
	}, nil)
	tools.Register(server, client)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting QuantPlay MCP server on stdio")
	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("MCP server stopped: %v", err)
	}
}
