package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// CLIConfig holds the parsed command line configuration.
type CLIConfig struct {
	ConfigPath      string
	LogLevel        string
	LogFormat       string
	MetricsPort     int
	ShutdownTimeout time.Duration
	ShowVersion     bool
	ShowHelp        bool
	Validate        bool

	// Session overrides, applied on top of the config file.
	Decoder        string
	Detection      string
	StartDelimiter string
	EndDelimiter   string
	Checksum       string
}

func parseFlags() *CLIConfig {
	cfg := &CLIConfig{}

	flag.StringVar(&cfg.ConfigPath, "config",
		getEnv("STREAMDASH_CONFIG", ""),
		"Path to session configuration file, empty for quick plot defaults (env: STREAMDASH_CONFIG)")

	flag.StringVar(&cfg.ConfigPath, "c",
		getEnv("STREAMDASH_CONFIG", ""),
		"Path to session configuration file (env: STREAMDASH_CONFIG)")

	flag.StringVar(&cfg.LogLevel, "log-level",
		getEnv("STREAMDASH_LOG_LEVEL", "info"),
		"Log level: debug, info, warn, error (env: STREAMDASH_LOG_LEVEL)")

	flag.StringVar(&cfg.LogFormat, "log-format",
		getEnv("STREAMDASH_LOG_FORMAT", "text"),
		"Log format: json, text (env: STREAMDASH_LOG_FORMAT)")

	flag.IntVar(&cfg.MetricsPort, "metrics-port",
		getEnvInt("STREAMDASH_METRICS_PORT", 0),
		"Prometheus metrics port, 0 to disable (env: STREAMDASH_METRICS_PORT)")

	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout",
		getEnvDuration("STREAMDASH_SHUTDOWN_TIMEOUT", 10*time.Second),
		"Graceful shutdown timeout (env: STREAMDASH_SHUTDOWN_TIMEOUT)")

	flag.StringVar(&cfg.Decoder, "decoder", "",
		"Override decoder method: plain_text, hex, base64")

	flag.StringVar(&cfg.Detection, "detection", "",
		"Override frame detection: end_delimiter_only, start_and_end_delimiter, no_delimiters")

	flag.StringVar(&cfg.StartDelimiter, "start-delimiter", "",
		`Override start delimiter (escapes: \n \r \t \0 \xNN)`)

	flag.StringVar(&cfg.EndDelimiter, "end-delimiter", "",
		`Override end delimiter (escapes: \n \r \t \0 \xNN)`)

	flag.StringVar(&cfg.Checksum, "checksum", "",
		"Override frame checksum: none, crc8, crc16, crc32")

	flag.BoolVar(&cfg.ShowVersion, "version", false, "Show version information")
	flag.BoolVar(&cfg.ShowVersion, "v", false, "Show version information")
	flag.BoolVar(&cfg.ShowHelp, "help", false, "Show help information")
	flag.BoolVar(&cfg.ShowHelp, "h", false, "Show help information")
	flag.BoolVar(&cfg.Validate, "validate", false, "Validate configuration and exit")

	flag.Parse()
	return cfg
}

func validateFlags(cfg *CLIConfig) error {
	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		return fmt.Errorf("metrics-port %d out of range", cfg.MetricsPort)
	}
	if cfg.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown-timeout must be positive")
	}
	return nil
}

func printHelp() {
	fmt.Printf("%s reads a device byte stream on stdin and emits ordered dashboard updates.\n\n", appName)
	fmt.Println("Usage:")
	fmt.Printf("  %s [flags] < /dev/ttyUSB0\n\n", appName)
	fmt.Println("Flags:")
	flag.PrintDefaults()
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
