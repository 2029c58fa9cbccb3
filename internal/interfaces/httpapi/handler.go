package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/itp-onboarding/internal/observability"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
	"github.com/riskibarqy/itp-onboarding/internal/usecase"
)

type Handler struct {
	onboardingService *usecase.OnboardingService
	uploadService     *usecase.UploadService
	consentService    *usecase.ConsentService
	metrics           *observability.PortalMetrics
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	onboardingService *usecase.OnboardingService,
	uploadService *usecase.UploadService,
	consentService *usecase.ConsentService,
	metrics *observability.PortalMetrics,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		onboardingService: onboardingService,
		uploadService:     uploadService,
		consentService:    consentService,
		metrics:           metrics,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
