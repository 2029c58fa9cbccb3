package draftstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/itp-onboarding/internal/domain/onboarding"
)

const keyPrefix = "onboarding:draft:"

// RedisStore keeps wizard drafts as JSON under onboarding:draft:{prospectID}.
type RedisStore struct {
	client redis.UniversalClient
	ttl    time.Duration
}

func NewRedisStore(client redis.UniversalClient, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// NewRedisClient parses a redis:// or rediss:// URL.
func NewRedisClient(rawURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(rawURL))
	if err != nil {
		return nil, crerr.Wrap(err, "parse REDIS_URL")
	}
	return redis.NewClient(opts), nil
}

func (s *RedisStore) Load(ctx context.Context, prospectID string) (onboarding.Draft, bool, error) {
	raw, err := s.client.Get(ctx, draftKey(prospectID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return onboarding.Draft{}, false, nil
	}
	if err != nil {
		return onboarding.Draft{}, false, crerr.Wrapf(err, "load draft %s", prospectID)
	}

	var draft onboarding.Draft
	if err := sonic.Unmarshal(raw, &draft); err != nil {
		return onboarding.Draft{}, false, crerr.Wrapf(err, "decode draft %s", prospectID)
	}
	if draft.ProspectID != prospectID {
		return onboarding.Draft{}, false, nil
	}

	return draft, true, nil
}

func (s *RedisStore) Save(ctx context.Context, draft onboarding.Draft) error {
	if strings.TrimSpace(draft.ProspectID) == "" {
		return crerr.Wrap(onboarding.ErrInvalidDraft, "draft prospect id is required")
	}

	raw, err := sonic.Marshal(draft)
	if err != nil {
		return crerr.Wrapf(err, "encode draft %s", draft.ProspectID)
	}
	if err := s.client.Set(ctx, draftKey(draft.ProspectID), raw, s.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "save draft %s", draft.ProspectID)
	}

	return nil
}

func (s *RedisStore) Clear(ctx context.Context, prospectID string) error {
	if err := s.client.Del(ctx, draftKey(prospectID)).Err(); err != nil {
		return crerr.Wrapf(err, "clear draft %s", prospectID)
	}
	return nil
}

func draftKey(prospectID string) string {
	return keyPrefix + prospectID
}
