package objectstore

import (
	"context"
	"errors"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/itp-onboarding/internal/domain/document"
	"github.com/riskibarqy/itp-onboarding/internal/platform/logging"
	"github.com/riskibarqy/itp-onboarding/internal/platform/resilience"
)

// S3API is the subset of the S3 client used by S3Store.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UsePathStyle    bool
}

// NewS3Client builds a client for AWS or an S3-compatible endpoint such as MinIO.
func NewS3Client(ctx context.Context, cfg S3Config) (*s3.Client, error) {
	loaders := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if strings.TrimSpace(cfg.AccessKeyID) != "" && strings.TrimSpace(cfg.SecretAccessKey) != "" {
		loaders = append(loaders, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loaders...)
	if err != nil {
		return nil, crerr.Wrap(err, "load aws config")
	}

	endpoint := strings.TrimSpace(cfg.Endpoint)
	return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	}), nil
}

type S3Store struct {
	client  S3API
	bucket  string
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewS3Store(client S3API, bucket string, breaker *resilience.CircuitBreaker, logger *logging.Logger) *S3Store {
	if logger == nil {
		logger = logging.Default()
	}
	return &S3Store{client: client, bucket: bucket, breaker: breaker, logger: logger}
}

// Put writes obj with If-None-Match so an existing key is never replaced.
// A refused conditional write is not a storage failure for the breaker.
func (s *S3Store) Put(ctx context.Context, obj document.Object) error {
	if s.client == nil || strings.TrimSpace(s.bucket) == "" {
		return crerr.New("object storage is not configured")
	}
	if strings.TrimSpace(obj.Key) == "" {
		return crerr.New("object key is required")
	}

	exists := false
	err := s.breaker.Execute(ctx, func(ctx context.Context) error {
		input := &s3.PutObjectInput{
			Bucket:      aws.String(s.bucket),
			Key:         aws.String(obj.Key),
			Body:        obj.Body,
			ContentType: aws.String(obj.ContentType),
			IfNoneMatch: aws.String("*"),
		}
		if obj.Size > 0 {
			input.ContentLength = aws.Int64(obj.Size)
		}

		_, putErr := s.client.PutObject(ctx, input)
		if isPreconditionFailed(putErr) {
			exists = true
			return nil
		}
		return putErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return err
	}
	if err != nil {
		s.logger.WarnContext(ctx, "s3 put object failed", "bucket", s.bucket, "key", obj.Key, "error", err)
		return crerr.Wrapf(err, "put object %s", obj.Key)
	}
	if exists {
		return crerr.Wrapf(document.ErrObjectExists, "put object %s", obj.Key)
	}

	s.logger.DebugContext(ctx, "stored document", "bucket", s.bucket, "key", obj.Key, "size", obj.Size)
	return nil
}

func isPreconditionFailed(err error) bool {
	if err == nil {
		return false
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "PreconditionFailed", "ConditionalRequestConflict":
			return true
		}
	}
	return false
}
