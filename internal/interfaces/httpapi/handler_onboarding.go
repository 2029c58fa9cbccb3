package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/riskibarqy/itp-onboarding/internal/domain/consent"
	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/usecase"
)

const (
	maxJSONBodyBytes   = 1 << 20
	multipartOverhead  = 1 << 20
	multipartMaxMemory = 4 << 20
)

// Numbers in the data map stay json.Number so whole-number checks are exact.
var onboardingJSON = jsoniter.Config{
	UseNumber:             true,
	DisallowUnknownFields: true,
}.Froze()

func (h *Handler) SaveOnboarding(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SaveOnboarding")
	defer span.End()

	var req saveOnboardingRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := onboardingJSON.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if strings.TrimSpace(req.ProspectID) == "" {
		writeError(ctx, w, fmt.Errorf("%w: missing prospectId", usecase.ErrInvalidInput))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	patch, err := patchFromData(req.Data)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	err = h.onboardingService.Save(ctx, usecase.SaveOnboardingInput{
		ProspectID: req.ProspectID,
		Step:       *req.Step,
		Submit:     req.Submit,
		Patch:      patch,
	})
	h.metrics.ObserveSave("api", req.Submit, err)
	if err != nil {
		h.logFailure(r, "save onboarding failed", err, "prospect_id", req.ProspectID, "step", *req.Step)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, saveOnboardingResponseDTO{Success: true})
}

func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadDocument")
	defer span.End()

	maxBytes := h.uploadService.MaxBytes()
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMaxMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, &document.SizeError{Limit: maxBytes}))
			return
		}
		writeError(ctx, w, fmt.Errorf("%w: invalid multipart form: %v", usecase.ErrInvalidInput, err))
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	input := usecase.UploadInput{
		ProspectID:   r.FormValue("prospectId"),
		DocumentType: r.FormValue("documentType"),
	}
	file, header, err := r.FormFile("file")
	switch {
	case err == nil:
		defer file.Close()
		input.Body = file
		input.FileName = header.Filename
		input.Size = header.Size
		input.ContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
	default:
		writeError(ctx, w, fmt.Errorf("%w: read file: %v", usecase.ErrInvalidInput, err))
		return
	}

	result, err := h.uploadService.Upload(ctx, input)
	h.metrics.ObserveUpload(documentTypeLabel(input.DocumentType), err)
	if err != nil {
		h.logFailure(r, "upload document failed", err, "prospect_id", input.ProspectID, "document_type", input.DocumentType)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, uploadResponseDTO{Path: result.Path})
}

func (h *Handler) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DownloadTemplate")
	defer span.End()

	kind := r.PathValue("type")
	prospectID := strings.TrimSpace(r.URL.Query().Get("prospectId"))

	file, err := h.consentService.Render(ctx, kind, prospectID)
	h.metrics.ObserveConsentDownload(templateLabel(kind), err)
	if err != nil {
		h.logFailure(r, "render consent template failed", err, "prospect_id", prospectID, "template", kind)
		writeError(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.Header().Set("Content-Length", strconv.Itoa(len(file.Body)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}

func (h *Handler) logFailure(r *http.Request, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if classify(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), msg, args...)
		return
	}
	h.logger.WarnContext(r.Context(), msg, args...)
}

// Metric labels are restricted to known values to keep cardinality bounded.
func documentTypeLabel(value string) string {
	docType, err := document.ParseType(value)
	if err != nil {
		return "unknown"
	}
	return string(docType)
}

func templateLabel(value string) string {
	kind, err := consent.ParseKind(value)
	if err != nil {
		return "unknown"
	}
	return string(kind)
}

// patchFromData keeps the whitelisted keys of data. Unknown keys are ignored.
// An empty string clears a non-text field.
func patchFromData(data map[string]any) (prospect.Patch, error) {
	patch := prospect.NewPatch()
	for key, value := range data {
		field := prospect.Field(key)
		kind, ok := prospect.KindOf(field)
		if !ok {
			continue
		}
		if s, isString := value.(string); isString && kind != prospect.KindText && strings.TrimSpace(s) == "" {
			value = nil
		}
		if err := patch.Set(field, value); err != nil {
			return prospect.Patch{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
	}
	return patch, nil
}

type saveOnboardingRequest struct {
	ProspectID string         `json:"prospectId" validate:"required"`
	Step       *int           `json:"step" validate:"required,min=0"`
	Submit     bool           `json:"submit"`
	Data       map[string]any `json:"data"`
}

type saveOnboardingResponseDTO struct {
	Success bool `json:"success"`
}

type uploadResponseDTO struct {
	Path string `json:"path"`
}
