package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"file-tools-server/internal/config"
	"file-tools-server/internal/filesystem"
	"file-tools-server/internal/lock"
	"file-tools-server/internal/mcp"
	"file-tools-server/internal/sandbox"
	"file-tools-server/internal/service"
	"file-tools-server/internal/transport"
)

const (
	lockTimeout     = 5 * time.Second
	shutdownTimeout = 10 * time.Second
)

func main() {
	var (
		configPath   string
		workingDir   string
		transportStr string
		port         int
		maxFileSize  int
		logLevel     string
		logFormat    string
		instanceLock bool
	)

	rootCmd := &cobra.Command{
		Use:   "file-tools",
		Short: "Sandboxed file-system toolset served over JSON-RPC",
		Long: "file-tools serves a small set of file-system operations (list, read,\n" +
			"search, write, delete) to LLM tool callers over stdio or HTTP. Mutating\n" +
			"operations are confined to a sandbox root taken from the environment.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				loaded, err := config.LoadFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			flags := cmd.Flags()
			if flags.Changed("dir") {
				cfg.WorkingDirectory = workingDir
			}
			if flags.Changed("transport") {
				cfg.Transport = transportStr
			}
			if flags.Changed("port") {
				cfg.Port = port
			}
			if flags.Changed("max-file-size") {
				cfg.MaxFileSizeMB = maxFileSize
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = logLevel
			}
			if flags.Changed("log-format") {
				cfg.LogFormat = logFormat
			}
			if flags.Changed("instance-lock") {
				cfg.InstanceLock = instanceLock
			}

			if err := cfg.Normalize(); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return run(cfg)
		},
	}

	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a YAML config file")
	rootCmd.Flags().StringVarP(&workingDir, "dir", "d", "", "working directory and default sandbox root (default: cwd)")
	rootCmd.Flags().StringVarP(&transportStr, "transport", "t", "stdio", "transport to use: stdio or http")
	rootCmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP listen port")
	rootCmd.Flags().IntVar(&maxFileSize, "max-file-size", 10, "maximum readable file size in MB (0 disables the cap)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.Flags().BoolVar(&instanceLock, "instance-lock", false, "refuse to start if another instance serves the same directory")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	log := newLogger(cfg)

	if cfg.InstanceLock {
		instLock, err := lock.Acquire(cfg.WorkingDirectory, lockTimeout)
		if err != nil {
			return fmt.Errorf("instance lock: %w", err)
		}
		defer func() {
			if err := instLock.Release(); err != nil {
				log.WithError(err).Warn("Failed to release instance lock")
			}
		}()
		log.WithField("lockfile", instLock.Path).Debug("Instance lock acquired")
	}

	guard, err := sandbox.NewGuard(&sandbox.EnvSource{DefaultRoot: cfg.WorkingDirectory})
	if err != nil {
		return err
	}

	fsAdapter := filesystem.NewOsAdapter()
	svc, err := service.NewDefaultFileToolService(fsAdapter, guard, cfg, log)
	if err != nil {
		return err
	}
	processor := mcp.NewProcessor(svc)

	log.WithFields(logrus.Fields{
		"working_directory": cfg.WorkingDirectory,
		"transport":         cfg.Transport,
	}).Info("Starting file-tools server")

	switch cfg.Transport {
	case "http":
		return runHTTP(cfg, svc, log)
	default:
		handler := transport.NewStdioHandler(svc, processor, log)
		return handler.Start(os.Stdin, os.Stdout)
	}
}

func runHTTP(cfg *config.Config, svc service.FileToolService, log *logrus.Logger) error {
	handler := transport.NewHTTPHandler(svc, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- handler.StartServer(cfg.Port, 0, 0)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.WithField("signal", sig.String()).Info("Shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := handler.Server.Shutdown(ctx); err != nil {
			log.WithError(err).Error("Graceful shutdown failed")
			return err
		}
		return <-errCh
	}
}

// newLogger builds the process logger. In stdio mode all logs go to stderr so
// stdout stays a clean JSON-RPC channel.
func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	log.SetOutput(os.Stderr)
	return log
}
