package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/itp-onboarding/internal/domain/consent"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

type ConsentRenderer interface {
	Render(ctx context.Context, doc consent.Document) ([]byte, error)
}

type ConsentFile struct {
	Kind        consent.Kind
	FileName    string
	ContentType string
	Body        []byte
}

type ConsentService struct {
	prospectRepo prospect.Repository
	renderer     ConsentRenderer
}

func NewConsentService(prospectRepo prospect.Repository, renderer ConsentRenderer) *ConsentService {
	return &ConsentService{
		prospectRepo: prospectRepo,
		renderer:     renderer,
	}
}

// Render fills a consent template with the prospect's details.
func (s *ConsentService) Render(ctx context.Context, kind, prospectID string) (ConsentFile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ConsentService.Render")
	defer span.End()

	if strings.TrimSpace(prospectID) == "" {
		return ConsentFile{}, fmt.Errorf("%w: missing prospectId", ErrInvalidInput)
	}

	item, err := loadProspect(ctx, s.prospectRepo, prospectID)
	if err != nil {
		return ConsentFile{}, err
	}

	parsedKind, err := consent.ParseKind(kind)
	if err != nil {
		return ConsentFile{}, fmt.Errorf("%w: unknown template type", ErrInvalidInput)
	}

	doc, err := consent.Build(parsedKind, consent.Subject{
		PlayerName:  item.FullName(),
		DateOfBirth: prospect.FormatDate(item.DateOfBirth),
		ParentName:  item.ParentName,
	})
	if err != nil {
		return ConsentFile{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	body, err := s.renderer.Render(ctx, doc)
	if err != nil {
		return ConsentFile{}, fmt.Errorf("render %s consent: %w", parsedKind, err)
	}

	return ConsentFile{
		Kind:        parsedKind,
		FileName:    consent.FileName(parsedKind, item.LastName),
		ContentType: "application/pdf",
		Body:        body,
	}, nil
}
