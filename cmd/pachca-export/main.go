package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/matillion/pachca-export/internal/export"
	"github.com/matillion/pachca-export/internal/pachca"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var version = "dev"

// flags holds command-line overrides; empty values defer to the environment
type flags struct {
	chatID    string
	output    string
	baseURL   string
	logLevel  string
	logDir    string
	pageDelay time.Duration
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "pachca-export",
		Short: "Export a Pachca channel and its threads to a text file",
		Long: `Export the full message history of a Pachca channel, including thread
replies, into a single human-readable text file.

Requires PACHCA_TOKEN and PACHCA_CHAT_ID in the environment or a .env file
in the working directory. --chat-id overrides PACHCA_CHAT_ID.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (for PACHCA_TOKEN)
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := createConfig(f, os.Getenv)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := initLogger(cfg.LogLevel, cfg.LogDir)
			if err != nil {
				return err
			}
			defer logger.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ref, err := run(ctx, cfg, logger)
			if err != nil {
				return pachca.WrapError(logger, "export", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK: %s created\n", ref.Path)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.chatID, "chat-id", "", "channel chat id (overrides PACHCA_CHAT_ID)")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (default $PACHCA_OUTPUT or "+pachca.DefaultOutputPath+")")
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "API base URL (default $PACHCA_BASE_URL or "+pachca.DefaultBaseURL+")")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level: debug, info, warn, error (default $LOG_LEVEL or info)")
	cmd.Flags().StringVar(&f.logDir, "log-dir", "", "directory for a daily log file (default $PACHCA_LOG_DIR, none if empty)")
	cmd.Flags().DurationVar(&f.pageDelay, "page-delay", pachca.DefaultPageDelay, "minimum delay between message page requests")

	return cmd
}

func run(ctx context.Context, cfg pachca.Config, logger *zap.Logger) (export.FileRef, error) {
	logger.Info("Creating Pachca client", zap.String("base_url", cfg.BaseURL))
	client, err := pachca.NewClient(cfg, logger)
	if err != nil {
		return export.FileRef{}, err
	}

	exporter := export.NewExporter(client, logger)
	return exporter.Export(ctx, cfg.ChatID, cfg.OutputPath)
}

// createConfig merges flags over environment variables over defaults
func createConfig(f flags, getenv func(string) string) pachca.Config {
	cfg := pachca.Config{
		Token:      getenv("PACHCA_TOKEN"),
		ChatID:     firstNonEmpty(f.chatID, getenv("PACHCA_CHAT_ID")),
		BaseURL:    firstNonEmpty(f.baseURL, getenv("PACHCA_BASE_URL")),
		OutputPath: firstNonEmpty(f.output, getenv("PACHCA_OUTPUT")),
		LogLevel:   firstNonEmpty(f.logLevel, getenv("LOG_LEVEL")),
		LogDir:     firstNonEmpty(f.logDir, getenv("PACHCA_LOG_DIR")),
		PageDelay:  f.pageDelay,
	}
	return cfg.WithDefaults()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func initLogger(level string, logDir string) (*zap.Logger, error) {
	logLevel := interpretLogLevel(level)

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(os.Stderr),
			logLevel,
		),
	}

	if logDir != "" {
		if err := os.MkdirAll(logDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		logFileName := fmt.Sprintf("pachca-export-%s.log", time.Now().Format("2006-01-02"))
		logFile, err := os.OpenFile(filepath.Join(logDir, logFileName), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(logFile),
			logLevel,
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

func interpretLogLevel(level string) zapcore.Level {
	var logLevel zapcore.Level

	switch level {
	case "debug":
		logLevel = zapcore.DebugLevel
	case "warn":
		logLevel = zapcore.WarnLevel
	case "error":
		logLevel = zapcore.ErrorLevel
	default:
		logLevel = zapcore.InfoLevel
	}
	return logLevel
}
