package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/itp-onboarding/internal/config"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
)

// Profiling owns the continuous profiler and the side-port pprof listener.
// Either part may be off; Stop handles both.
type Profiling struct {
	profiler *pyroscope.Profiler
	pprof    *http.Server
	logger   *logging.Logger
}

func StartProfiling(cfg config.Config, logger *logging.Logger) (*Profiling, error) {
	if logger == nil {
		logger = logging.Default()
	}
	p := &Profiling{logger: logger}

	if cfg.PyroscopeEnabled {
		profiler, err := pyroscope.Start(pyroscopeConfig(cfg))
		if err != nil {
			return nil, err
		}
		p.profiler = profiler
		logger.Info("pyroscope enabled", "server_address", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	} else {
		logger.Info("pyroscope disabled", "reason", "PYROSCOPE_ENABLED=false")
	}

	if cfg.PprofEnabled {
		p.pprof = &http.Server{
			Addr:              cfg.PprofAddr,
			Handler:           pprofHandler(),
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func(srv *http.Server) {
			logger.Info("pprof server starting", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("pprof server failed", "error", err)
			}
		}(p.pprof)
	} else {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
	}

	return p, nil
}

func (p *Profiling) Stop(ctx context.Context) error {
	if p == nil {
		return nil
	}
	var errs []error
	if p.pprof != nil {
		if err := p.pprof.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		} else {
			p.logger.Info("pprof server stopped")
		}
	}
	if p.profiler != nil {
		errs = append(errs, p.profiler.Stop())
	}
	return errors.Join(errs...)
}

func pyroscopeConfig(cfg config.Config) pyroscope.Config {
	return pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"site":    cfg.ITPSite,
		},
		// Uploads and PDF rendering are allocation heavy, so heap profiles
		// are collected alongside CPU.
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
	}
}

func pprofHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}
