package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"filler/internal/domain/analysis"
	ferrors "filler/internal/errors"
)

const analysisKeyPrefix = "filler:analysis:"

type RedisAnalysisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisAnalysisStore(client *redis.Client, ttl time.Duration) *RedisAnalysisStore {
	return &RedisAnalysisStore{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisAnalysisStore) GetAnalysis(ctx context.Context, key string) (analysis.Analysis, error) {
	raw, err := r.client.Get(ctx, analysisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return analysis.Analysis{}, ferrors.ErrAnalysisNotFound
		}
		return analysis.Analysis{}, err
	}

	var a analysis.Analysis
	if err := json.Unmarshal(raw, &a); err != nil {
		return analysis.Analysis{}, err
	}
	return a, nil
}

func (r *RedisAnalysisStore) SaveAnalysis(ctx context.Context, key string, a analysis.Analysis) error {
	raw, err := json.Marshal(a)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, analysisKeyPrefix+key, raw, r.ttl).Err()
}
