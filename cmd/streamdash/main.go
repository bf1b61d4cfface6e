// Package main implements the streamdash entry point. It reads a device
// byte stream on stdin, runs it through the frame pipeline, and prints
// ordered dashboard updates with their resolved widgets.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/streamdash/bus"
	"github.com/c360/streamdash/config"
	"github.com/c360/streamdash/metric"
	"github.com/c360/streamdash/pipeline"
	"github.com/c360/streamdash/pkg/sysinfo"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "streamdash"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil
	}
	if cliCfg.ShowHelp {
		printHelp()
		return nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting streamdash",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	if sysinfo.RunningAsAdmin() {
		slog.Warn("Running with administrative privileges; not required unless the serial device demands it")
	}

	sessionCfg, err := loadSessionConfig(cliCfg)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	registry := metric.NewRegistry()
	serveMetrics(registry, cliCfg.MetricsPort)

	source := bus.NewReaderSource(os.Stdin, bus.Serial)
	sink := newConsoleSink(os.Stdout)

	session, err := pipeline.NewSession(sessionCfg, source, sink,
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(registry.Core),
		pipeline.WithRegistry(registry))
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if err := session.Initialize(); err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := session.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	<-ctx.Done()
	slog.Info("Shutdown signal received", "timeout", cliCfg.ShutdownTimeout)

	if err := session.Stop(cliCfg.ShutdownTimeout); err != nil {
		return fmt.Errorf("stop session: %w", err)
	}
	return nil
}

// loadSessionConfig reads the session file (quick plot defaults when no
// path was given) and applies command line overrides on top.
func loadSessionConfig(cliCfg *CLIConfig) (config.Session, error) {
	sessionCfg := config.DefaultSession()
	if cliCfg.ConfigPath != "" {
		loaded, err := config.Load(cliCfg.ConfigPath)
		if err != nil {
			return config.Session{}, err
		}
		sessionCfg = loaded
	}

	if cliCfg.Decoder != "" {
		sessionCfg.DecoderMethod = cliCfg.Decoder
	}
	if cliCfg.Detection != "" {
		sessionCfg.FrameDetection = cliCfg.Detection
	}
	if cliCfg.StartDelimiter != "" {
		sessionCfg.StartDelimiter = cliCfg.StartDelimiter
	}
	if cliCfg.EndDelimiter != "" {
		sessionCfg.EndDelimiter = cliCfg.EndDelimiter
	}
	if cliCfg.Checksum != "" {
		sessionCfg.Checksum = cliCfg.Checksum
	}

	if err := sessionCfg.Validate(); err != nil {
		return config.Session{}, err
	}
	return sessionCfg, nil
}

// serveMetrics exposes /metrics when a port is configured.
func serveMetrics(registry *metric.Registry, port int) {
	if port <= 0 {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", registry.Handler())
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("Metrics server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
}
