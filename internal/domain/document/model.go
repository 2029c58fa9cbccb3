package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/riskibarqy/itp-onboarding/internal/domain/prospect"
)

// MaxUploadSize is the largest accepted document, in bytes.
const MaxUploadSize int64 = 10 << 20

var (
	ErrUnknownType    = errors.New("unknown document type")
	ErrObjectExists   = errors.New("object already exists")
	ErrTooLarge       = errors.New("file must be under 10 MB")
	ErrMIMENotAllowed = errors.New("only images and PDFs are allowed")
)

// SizeError reports an upload over the configured limit. It matches
// ErrTooLarge under errors.Is.
type SizeError struct {
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("file must be under %d MB", e.Limit>>20)
}

func (e *SizeError) Is(target error) bool {
	return target == ErrTooLarge
}

type Type string

const (
	TypePassport        Type = "passport"
	TypeParent1Passport Type = "parent1_passport"
	TypeParent2Passport Type = "parent2_passport"
	TypeVollmacht       Type = "vollmacht"
	TypeWellpassConsent Type = "wellpass_consent"
)

type spec struct {
	label string
	field prospect.Field
}

var types = map[Type]spec{
	TypePassport:        {label: "Player Passport (bio page)", field: prospect.FieldPassportFilePath},
	TypeParent1Passport: {label: "Parent 1 Passport (bio page)", field: prospect.FieldParent1PassportFilePath},
	TypeParent2Passport: {label: "Parent 2 Passport (bio page)", field: prospect.FieldParent2PassportFilePath},
	TypeVollmacht:       {label: "Signed Vollmacht", field: prospect.FieldVollmachtFilePath},
	TypeWellpassConsent: {label: "Signed Wellpass Consent", field: prospect.FieldWellpassConsentFilePath},
}

func ParseType(value string) (Type, error) {
	t := Type(strings.TrimSpace(value))
	if _, ok := types[t]; !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownType, value)
	}
	return t, nil
}

func (t Type) Label() string {
	return types[t].label
}

// Field is the prospect column that stores the uploaded object key.
func (t Type) Field() prospect.Field {
	return types[t].field
}

var allowedMIME = map[string]struct{}{
	"image/jpeg":      {},
	"image/png":       {},
	"image/gif":       {},
	"image/webp":      {},
	"image/heic":      {},
	"image/heif":      {},
	"application/pdf": {},
}

// AllowedMIME reports whether contentType, ignoring parameters, is accepted.
func AllowedMIME(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	_, ok := allowedMIME[strings.ToLower(mediaType)]
	return ok
}

// ObjectKey builds "<prospectID>/<type>_<unixMillis>.<ext>". The extension
// comes from fileName and defaults to "bin".
func ObjectKey(prospectID string, docType Type, at time.Time, fileName string) string {
	return fmt.Sprintf("%s/%s_%d.%s", prospectID, docType, at.UnixMilli(), extension(fileName))
}

func extension(fileName string) string {
	ext := strings.TrimPrefix(path.Ext(path.Base(strings.ReplaceAll(fileName, "\\", "/"))), ".")
	if ext == "" {
		return "bin"
	}
	for _, r := range ext {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return "bin"
		}
	}
	return strings.ToLower(ext)
}

type Object struct {
	Key         string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ObjectStore writes uploaded documents. Put never overwrites: an existing
// key yields ErrObjectExists.
type ObjectStore interface {
	Put(ctx context.Context, obj Object) error
}
