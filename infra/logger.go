package infra

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/KacperKuznik/image-hosting-api/config"
	"go.opentelemetry.io/contrib/bridges/otelslog"
)

// LoggerClient wraps slog; when an OTLP endpoint is configured, records are
// bridged to the collector, otherwise they go to stdout as JSON.
type LoggerClient struct {
	logger    *slog.Logger
	telemetry *Telemetry
}

func InitLoggerClient(cfg *config.EnvConfig) *LoggerClient {
	if cfg.Grafana.OTLPEndpoint == "" {
		return &LoggerClient{
			logger: slog.New(slog.NewJSONHandler(os.Stdout, nil)),
		}
	}

	telemetry, err := InitTelemetry(context.Background(), cfg)
	if err != nil {
		// Telemetry is best-effort: fall back to local logging.
		fallback := slog.New(slog.NewJSONHandler(os.Stdout, nil))
		fallback.Warn("telemetry init failed, using stdout logging", "error", err)
		return &LoggerClient{logger: fallback}
	}

	return &LoggerClient{
		logger:    otelslog.NewLogger(cfg.Grafana.ServiceName, otelslog.WithLoggerProvider(telemetry.LoggerProvider)),
		telemetry: telemetry,
	}
}

func (l *LoggerClient) InfoWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.InfoContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) WarningWithContextf(ctx context.Context, format string, args ...interface{}) {
	l.logger.WarnContext(ctx, fmt.Sprintf(format, args...))
}

func (l *LoggerClient) ErrorWithContextf(ctx context.Context, err error, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if err != nil {
		l.logger.ErrorContext(ctx, msg, slog.Any("error", err))
		return
	}
	l.logger.ErrorContext(ctx, msg)
}

func (l *LoggerClient) Shutdown(ctx context.Context) {
	l.telemetry.Shutdown(ctx)
}
