package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/valyala/bytebufferpool"

	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/platform/resilience"
)

const maxKeyAttempts = 3

type UploadInput struct {
	ProspectID   string
	DocumentType string
	FileName     string
	ContentType  string
	Size         int64
	Body         io.Reader
}

type UploadResult struct {
	Path         string
	DocumentType document.Type
	ContentType  string
}

type UploadService struct {
	prospectRepo prospect.Repository
	store        document.ObjectStore
	maxBytes     int64
	now          func() time.Time
}

func NewUploadService(prospectRepo prospect.Repository, store document.ObjectStore, maxBytes int64) *UploadService {
	if maxBytes <= 0 {
		maxBytes = document.MaxUploadSize
	}
	return &UploadService{
		prospectRepo: prospectRepo,
		store:        store,
		maxBytes:     maxBytes,
		now:          time.Now,
	}
}

func (s *UploadService) MaxBytes() int64 {
	return s.maxBytes
}

// Upload validates and stores one document. Checks run in order: required
// fields, size, content type, document type, then the prospect lookup.
// Nothing is written unless every check passes.
func (s *UploadService) Upload(ctx context.Context, input UploadInput) (UploadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UploadService.Upload")
	defer span.End()

	input.ProspectID = strings.TrimSpace(input.ProspectID)
	input.DocumentType = strings.TrimSpace(input.DocumentType)
	if input.Body == nil || input.ProspectID == "" || input.DocumentType == "" {
		return UploadResult{}, fmt.Errorf("%w: missing file, prospectId, or documentType", ErrInvalidInput)
	}
	tooLarge := fmt.Errorf("%w: %w", ErrInvalidInput, &document.SizeError{Limit: s.maxBytes})
	if input.Size > s.maxBytes {
		return UploadResult{}, tooLarge
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if _, err := buf.ReadFrom(io.LimitReader(input.Body, s.maxBytes+1)); err != nil {
		return UploadResult{}, fmt.Errorf("%w: read file: %v", ErrInvalidInput, err)
	}
	if int64(buf.Len()) > s.maxBytes {
		return UploadResult{}, tooLarge
	}
	if buf.Len() == 0 {
		return UploadResult{}, fmt.Errorf("%w: missing file, prospectId, or documentType", ErrInvalidInput)
	}

	detected := mimetype.Detect(buf.B)
	declared := strings.TrimSpace(input.ContentType)
	if !document.AllowedMIME(detected.String()) ||
		(declared != "" && declared != "application/octet-stream" && !document.AllowedMIME(declared)) {
		return UploadResult{}, fmt.Errorf("%w: %w", ErrInvalidInput, document.ErrMIMENotAllowed)
	}

	docType, err := document.ParseType(input.DocumentType)
	if err != nil {
		return UploadResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if _, err := loadProspect(ctx, s.prospectRepo, input.ProspectID); err != nil {
		return UploadResult{}, err
	}

	contentType := mimeWithoutParams(detected.String())
	key, err := s.put(ctx, input, docType, contentType, buf.B)
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{Path: key, DocumentType: docType, ContentType: contentType}, nil
}

// put writes the object under a fresh timestamped key. Two uploads of the
// same type within one millisecond collide, so a taken key moves the
// timestamp forward and tries again.
func (s *UploadService) put(ctx context.Context, input UploadInput, docType document.Type, contentType string, data []byte) (string, error) {
	at := s.now()
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key := document.ObjectKey(input.ProspectID, docType, at.Add(time.Duration(attempt)*time.Millisecond), input.FileName)
		err := s.store.Put(ctx, document.Object{
			Key:         key,
			ContentType: contentType,
			Size:        int64(len(data)),
			Body:        bytes.NewReader(data),
		})
		switch {
		case err == nil:
			return key, nil
		case errors.Is(err, document.ErrObjectExists):
			continue
		case errors.Is(err, resilience.ErrCircuitOpen):
			return "", fmt.Errorf("%w: object storage: %v", ErrDependencyUnavailable, err)
		default:
			return "", fmt.Errorf("store document: %w", err)
		}
	}
	return "", fmt.Errorf("%w: %w", ErrConflict, document.ErrObjectExists)
}

func mimeWithoutParams(v string) string {
	if i := strings.IndexByte(v, ';'); i >= 0 {
		return strings.TrimSpace(v[:i])
	}
	return v
}
