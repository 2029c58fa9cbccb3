package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
	documentmock "github.com/riskibarqy/itp-onboarding/internal/mocks/domain/document"
	prospectmock "github.com/riskibarqy/itp-onboarding/internal/mocks/domain/prospect"
	"github.com/riskibarqy/itp-onboarding/internal/platform/resilience"
)

var (
	pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
	pdfHeader = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\n")
)

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	return len(p), nil
}

func TestUploadService_RejectsOversizeWithoutStoring(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input UploadInput
	}{
		{
			name: "declared size",
			input: UploadInput{
				ProspectID: testProspectID, DocumentType: "passport", FileName: "scan.pdf",
				ContentType: "application/pdf", Size: 15 << 20,
				Body: io.LimitReader(zeroReader{}, 15<<20),
			},
		},
		{
			name: "streamed size",
			input: UploadInput{
				ProspectID: testProspectID, DocumentType: "passport", FileName: "scan.pdf",
				Body: io.MultiReader(bytes.NewReader(pdfHeader), io.LimitReader(zeroReader{}, 15<<20)),
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := documentmock.NewObjectStore(t)
			service := NewUploadService(prospectmock.NewRepository(t), store, document.MaxUploadSize)

			_, err := service.Upload(context.Background(), tc.input)
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, document.ErrTooLarge)
			assert.Equal(t, "invalid input: file must be under 10 MB", err.Error())
			store.AssertNotCalled(t, "Put", mock.Anything, mock.Anything)
		})
	}
}

func TestUploadService_RejectsDisallowedMIME(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		body        []byte
		contentType string
	}{
		{name: "plain text content", body: []byte("hello, this is not a passport"), contentType: "text/plain"},
		{name: "spoofed header", body: []byte("#!/bin/sh\necho hi\n"), contentType: "image/png"},
		{name: "png declared as zip", body: pngHeader, contentType: "application/zip"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := documentmock.NewObjectStore(t)
			service := NewUploadService(prospectmock.NewRepository(t), store, 0)

			_, err := service.Upload(context.Background(), UploadInput{
				ProspectID:   testProspectID,
				DocumentType: "passport",
				FileName:     "file",
				ContentType:  tc.contentType,
				Size:         int64(len(tc.body)),
				Body:         bytes.NewReader(tc.body),
			})
			require.ErrorIs(t, err, ErrInvalidInput)
			require.ErrorIs(t, err, document.ErrMIMENotAllowed)
			assert.Equal(t, "Only images and PDFs are allowed", PublicMessage(err))
		})
	}
}

func TestUploadService_MissingFields(t *testing.T) {
	t.Parallel()

	service := NewUploadService(prospectmock.NewRepository(t), documentmock.NewObjectStore(t), 0)
	_, err := service.Upload(context.Background(), UploadInput{ProspectID: testProspectID, Body: bytes.NewReader(pdfHeader)})
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Contains(t, err.Error(), "missing file, prospectId, or documentType")
}

func TestUploadService_UnknownDocumentType(t *testing.T) {
	t.Parallel()

	service := NewUploadService(prospectmock.NewRepository(t), documentmock.NewObjectStore(t), 0)
	_, err := service.Upload(context.Background(), UploadInput{
		ProspectID: testProspectID, DocumentType: "visa", Body: bytes.NewReader(pdfHeader),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestUploadService_UnknownProspect(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{}, false, nil).Once()
	service := NewUploadService(repo, documentmock.NewObjectStore(t), 0)

	_, err := service.Upload(context.Background(), UploadInput{
		ProspectID: testProspectID, DocumentType: "passport", Body: bytes.NewReader(pdfHeader),
	})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestUploadService_StoresObject(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()

	store := documentmock.NewObjectStore(t)
	var stored []byte
	store.On("Put", mock.Anything, mock.MatchedBy(func(obj document.Object) bool {
		return obj.ContentType == "image/png" && obj.Size == int64(len(pngHeader))
	})).Run(func(args mock.Arguments) {
		obj := args.Get(1).(document.Object)
		stored, _ = io.ReadAll(obj.Body)
	}).Return(nil).Once()

	service := NewUploadService(repo, store, 0)
	service.now = func() time.Time { return time.UnixMilli(1772438400123) }

	result, err := service.Upload(context.Background(), UploadInput{
		ProspectID:   testProspectID,
		DocumentType: "passport",
		FileName:     "Passport.PNG",
		ContentType:  "image/png",
		Size:         int64(len(pngHeader)),
		Body:         bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, testProspectID+"/passport_1772438400123.png", result.Path)
	assert.Equal(t, document.TypePassport, result.DocumentType)
	assert.Equal(t, pngHeader, stored)
}

func TestUploadService_SizeLimitFollowsConfig(t *testing.T) {
	t.Parallel()

	service := NewUploadService(prospectmock.NewRepository(t), documentmock.NewObjectStore(t), 2<<20)
	_, err := service.Upload(context.Background(), UploadInput{
		ProspectID: testProspectID, DocumentType: "passport", FileName: "scan.pdf",
		Size: 3 << 20, Body: bytes.NewReader(pdfHeader),
	})

	var sizeErr *document.SizeError
	require.ErrorAs(t, err, &sizeErr)
	assert.Equal(t, int64(2<<20), sizeErr.Limit)
	assert.ErrorIs(t, err, document.ErrTooLarge)
	assert.Equal(t, "File must be under 2 MB", PublicMessage(err))
}

func TestUploadService_TakenKeyMovesTimestampForward(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()

	store := documentmock.NewObjectStore(t)
	var keys []string
	store.On("Put", mock.Anything, mock.MatchedBy(func(obj document.Object) bool {
		return obj.Key == testProspectID+"/vollmacht_1772438400123.pdf"
	})).Run(func(args mock.Arguments) {
		keys = append(keys, args.Get(1).(document.Object).Key)
	}).Return(fmt.Errorf("%w: taken", document.ErrObjectExists)).Once()

	var stored []byte
	store.On("Put", mock.Anything, mock.MatchedBy(func(obj document.Object) bool {
		return obj.Key == testProspectID+"/vollmacht_1772438400124.pdf"
	})).Run(func(args mock.Arguments) {
		obj := args.Get(1).(document.Object)
		keys = append(keys, obj.Key)
		stored, _ = io.ReadAll(obj.Body)
	}).Return(nil).Once()

	service := NewUploadService(repo, store, 0)
	service.now = func() time.Time { return time.UnixMilli(1772438400123) }

	result, err := service.Upload(context.Background(), UploadInput{
		ProspectID: testProspectID, DocumentType: "vollmacht", FileName: "v.pdf",
		Body: bytes.NewReader(pdfHeader),
	})
	require.NoError(t, err)
	assert.Equal(t, testProspectID+"/vollmacht_1772438400124.pdf", result.Path)
	assert.Len(t, keys, 2)
	assert.Equal(t, pdfHeader, stored)
}

func TestUploadService_KeyConflictAfterRetries(t *testing.T) {
	t.Parallel()

	repo := prospectmock.NewRepository(t)
	repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()
	store := documentmock.NewObjectStore(t)
	store.On("Put", mock.Anything, mock.Anything).Return(document.ErrObjectExists).Times(maxKeyAttempts)

	_, err := NewUploadService(repo, store, 0).Upload(context.Background(), UploadInput{
		ProspectID: testProspectID, DocumentType: "passport", FileName: "p.pdf",
		Body: bytes.NewReader(pdfHeader),
	})
	require.ErrorIs(t, err, ErrConflict)
	assert.ErrorIs(t, err, document.ErrObjectExists)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	store.AssertNumberOfCalls(t, "Put", maxKeyAttempts)
}

func TestUploadService_StorageFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		storeErr error
		want     error
	}{
		{name: "circuit open", storeErr: resilience.ErrCircuitOpen, want: ErrDependencyUnavailable},
		{name: "write failed", storeErr: errors.New("s3: 500"), want: nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := prospectmock.NewRepository(t)
			repo.On("Get", mock.Anything, testProspectID).Return(prospect.Prospect{ID: testProspectID}, true, nil).Once()
			store := documentmock.NewObjectStore(t)
			store.On("Put", mock.Anything, mock.Anything).Return(tc.storeErr).Once()

			_, err := NewUploadService(repo, store, 0).Upload(context.Background(), UploadInput{
				ProspectID: testProspectID, DocumentType: "vollmacht", FileName: "v.pdf",
				Body: strings.NewReader(string(pdfHeader)),
			})
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
				return
			}
			assert.ErrorIs(t, err, tc.storeErr)
			assert.NotErrorIs(t, err, ErrInvalidInput)
		})
	}
}
