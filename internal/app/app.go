package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/riskibarqy/itp-onboarding/internal/config"
	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/location"
	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/domain/schedule"
	"github.com/riskibarqy/itp-onboarding/internal/infrastructure/draftstore"
	"github.com/riskibarqy/itp-onboarding/internal/infrastructure/objectstore"
	"github.com/riskibarqy/itp-onboarding/internal/infrastructure/pdf"
	cacheRepo "github.com/riskibarqy/itp-onboarding/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/itp-onboarding/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/itp-onboarding/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/itp-onboarding/internal/interfaces/httpapi"
	"github.com/riskibarqy/itp-onboarding/internal/interfaces/web"
	"github.com/riskibarqy/itp-onboarding/internal/observability"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
	"github.com/riskibarqy/itp-onboarding/internal/platform/resilience"
	"github.com/riskibarqy/itp-onboarding/internal/usecase"
)

// Runtime is the assembled service. Close releases the connections opened
// while building it, in reverse order.
type Runtime struct {
	Server  *http.Server
	closers []func() error
}

func (r *Runtime) Close() error {
	var errs []error
	for i := len(r.closers) - 1; i >= 0; i-- {
		if err := r.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	r.closers = nil
	return errors.Join(errs...)
}

type repositories struct {
	prospects prospect.Repository
	events    schedule.Repository
	locations location.Repository
}

func NewRuntime(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	rt := &Runtime{}
	fail := func(err error) (*Runtime, error) {
		_ = rt.Close()
		return nil, err
	}

	repos, err := buildRepositories(ctx, cfg, logger, rt)
	if err != nil {
		return fail(err)
	}
	drafts, err := buildDraftStore(ctx, cfg, logger, rt)
	if err != nil {
		return fail(err)
	}
	objects, err := buildObjectStore(ctx, cfg, logger)
	if err != nil {
		return fail(err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewPortalMetrics(registry)

	onboardingSvc := usecase.NewOnboardingService(repos.prospects)
	uploadSvc := usecase.NewUploadService(repos.prospects, objects, cfg.UploadMaxBytes)
	consentSvc := usecase.NewConsentService(repos.prospects, pdf.NewRenderer())
	portalSvc := usecase.NewPortalService(repos.prospects, repos.events, repos.locations, usecase.PortalConfig{
		Location:        cfg.DisplayLocation,
		Site:            cfg.ITPSite,
		HiddenTypes:     cfg.CalendarHiddenTypes,
		PreseasonNotice: cfg.PreseasonNotice,
	})
	wizardSvc := usecase.NewWizardService(repos.prospects, onboardingSvc, uploadSvc, drafts, logger)

	pages, err := web.NewPages(portalSvc, wizardSvc, web.Options{
		Metrics:         metrics,
		Logger:          logger,
		CSRFKey:         []byte(cfg.CSRFAuthKey),
		CSRFSecure:      cfg.CSRFSecure,
		PreseasonNotice: cfg.PreseasonNotice,
		UploadMaxBytes:  cfg.UploadMaxBytes,
	})
	if err != nil {
		return fail(fmt.Errorf("build pages: %w", err))
	}

	handler := httpapi.NewHandler(onboardingSvc, uploadSvc, consentSvc, metrics, logger)
	router := httpapi.NewRouter(handler, httpapi.RouterOptions{
		Pages:              pages.Handler(),
		Metrics:            promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:             logger,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	rt.Server = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
	}

	logger.Info("runtime ready",
		"repository_backend", cfg.RepositoryBackend,
		"draft_store_backend", cfg.DraftStoreBackend,
		"object_store_backend", cfg.ObjectStoreBackend,
		"cache_enabled", cfg.CacheEnabled,
	)
	return rt, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger, rt *Runtime) (repositories, error) {
	var repos repositories
	switch cfg.RepositoryBackend {
	case config.BackendMemory:
		logger.Warn("using in-memory repositories with demo data")
		repos = repositories{
			prospects: memory.NewProspectRepository(memory.SeedProspects()),
			events:    memory.NewEventRepository(memory.SeedEvents()),
			locations: memory.NewLocationRepository(memory.SeedLocations()),
		}
	case config.BackendPostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, err
		}
		rt.closers = append(rt.closers, db.Close)
		repos = repositories{
			prospects: postgres.NewProspectRepository(db),
			events:    postgres.NewEventRepository(db),
			locations: postgres.NewLocationRepository(db),
		}
	default:
		return repositories{}, fmt.Errorf("unsupported repository backend %q", cfg.RepositoryBackend)
	}

	// Prospect reads stay uncached so a submitted onboarding is visible on
	// the next request.
	if cfg.CacheEnabled {
		repos.events = cacheRepo.NewEventRepository(repos.events, cfg.CacheTTL)
		repos.locations = cacheRepo.NewLocationRepository(repos.locations, cfg.CacheTTL)
	}
	return repos, nil
}

func buildDraftStore(ctx context.Context, cfg config.Config, logger *logging.Logger, rt *Runtime) (onboarding.DraftStore, error) {
	if cfg.DraftStoreBackend != config.BackendRedis {
		return draftstore.NewMemoryStore(cfg.DraftTTL), nil
	}

	client, err := draftstore.NewRedisClient(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	rt.closers = append(rt.closers, client.Close)
	logger.Info("redis draft store connected")
	return draftstore.NewRedisStore(client, cfg.DraftTTL), nil
}

func buildObjectStore(ctx context.Context, cfg config.Config, logger *logging.Logger) (document.ObjectStore, error) {
	if cfg.ObjectStoreBackend != config.BackendS3 {
		logger.Warn("using in-memory object store; uploads are lost on restart")
		return objectstore.NewMemoryStore(), nil
	}

	client, err := objectstore.NewS3Client(ctx, objectstore.S3Config{
		Bucket:          cfg.S3Bucket,
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		UsePathStyle:    cfg.S3UsePathStyle,
	})
	if err != nil {
		return nil, err
	}

	breaker := resilience.NewCircuitBreaker(cfg.StorageCircuit)
	return objectstore.NewS3Store(client, cfg.S3Bucket, breaker, logger), nil
}
