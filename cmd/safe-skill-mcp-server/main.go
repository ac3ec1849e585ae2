package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hb-chen/safeskill/internal/skill"
	"github.com/hb-chen/safeskill/internal/skill/builtin"
	"github.com/hb-chen/safeskill/internal/skill/mcp/servers"
	"github.com/hb-chen/safeskill/internal/tracer"
	"github.com/hb-chen/safeskill/pkg/logger"
)

const (
	serverName    = "safe-skill-mcp-server"
	serverVersion = "1.0.0"
)

func main() {
	skillsConfig := flag.String("skills-config", "", "per-skill YAML config")
	timeout := flag.Duration("timeout", 30*time.Second, "skill execution timeout")
	logLevel := flag.String("log-level", "INFO", "log level")
	flag.Parse()

	// stdout carries the protocol, so logs go to stderr
	zapLogger, err := logger.New(logger.Options{Level: *logLevel, Stderr: true})
	if err != nil {
		os.Exit(1)
	}
	logger.ReplaceLogger(zapLogger)
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting safe skill MCP server...")

	registry, err := builtin.NewRegistry()
	if err != nil {
		logger.Fatalf("Failed to register skills: %v", err)
	}

	cfg := skill.GetDefaultConfig()
	if *skillsConfig != "" {
		cfg, err = skill.LoadConfig(*skillsConfig)
		if err != nil {
			logger.Fatalf("Failed to load skills config: %v", err)
		}
	}

	router := skill.NewRouter(registry, cfg,
		skill.WithTracer(tracer.New(true, tracer.LevelMinimal)),
		skill.WithTimeout(*timeout),
	)
	mcpServer := servers.NewSkillServer(serverName, serverVersion, router).GetServer()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("MCP server ready (stdio)")
	if err := mcpServer.Serve(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("Server error: %v", err)
	}

	logger.Info("Server stopped")
}
