package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/itp-onboarding/internal/config"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

type ShutdownFunc func(context.Context) error

// InitUptrace installs the global OpenTelemetry providers. Without a DSN the
// service runs untraced and the log mirror stays off.
func InitUptrace(cfg config.Config, logger *logging.Logger) (ShutdownFunc, error) {
	if logger == nil {
		logger = logging.Default()
	}

	if reason := uptraceDisabledReason(cfg); reason != "" {
		logging.SetMirror(nil)
		logger.Info("uptrace disabled", "reason", reason)
		return func(context.Context) error { return nil }, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(attribute.String("itp.site", cfg.ITPSite)),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)

	logger.Info("uptrace enabled",
		"service_version", cfg.ServiceVersion,
		"itp_site", cfg.ITPSite,
		"logs_enabled", cfg.UptraceLogsEnabled,
	)

	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}

func uptraceDisabledReason(cfg config.Config) string {
	switch {
	case !cfg.UptraceEnabled:
		return "UPTRACE_ENABLED=false"
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		return "UPTRACE_DSN empty"
	default:
		return ""
	}
}
