package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sainanduk/problemsolving-go/internal/repository"
)

// ErrNoTestcases indicates a question has no test cases to grade against.
var ErrNoTestcases = errors.New("no testcases found")

// CachedTestCase is the projection of a test case stored in the cache and fed
// to the judge: input text and expected output only.
type CachedTestCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// TestcaseCache resolves a question's test cases cache-first. On a miss it
// reads the database and writes the snapshot through with a fixed expiry, so
// cached content can be up to one TTL stale relative to edits; there is no
// invalidation hook. Concurrent misses may both populate the key, which is
// benign because both write the same snapshot.
type TestcaseCache struct {
	testCases repository.TestCaseRepository
	cache     *redis.Client
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewTestcaseCache builds the test case resolver.
func NewTestcaseCache(testCases repository.TestCaseRepository, cache *redis.Client, ttl time.Duration, logger zerolog.Logger) *TestcaseCache {
	if ttl <= 0 {
		ttl = time.Hour
	}

	return &TestcaseCache{
		testCases: testCases,
		cache:     cache,
		ttl:       ttl,
		logger:    logger.With().Str("component", "testcase_cache").Logger(),
	}
}

func cacheKey(questionID uint) string {
	return fmt.Sprintf("question:%d:testcases", questionID)
}

// Get returns the question's test cases in evaluation order.
func (t *TestcaseCache) Get(ctx context.Context, questionID uint) ([]CachedTestCase, error) {
	key := cacheKey(questionID)

	if t.cache != nil {
		if cached, err := t.cache.Get(ctx, key).Result(); err == nil {
			var testCases []CachedTestCase
			if unmarshalErr := json.Unmarshal([]byte(cached), &testCases); unmarshalErr == nil {
				t.logger.Debug().Uint("question_id", questionID).Msg("testcase cache hit")
				return testCases, nil
			}
		} else if !errors.Is(err, redis.Nil) {
			t.logger.Warn().Err(err).Uint("question_id", questionID).Msg("failed to read testcase cache")
		}
	}

	rows, err := t.testCases.ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("load testcases: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoTestcases
	}

	testCases := make([]CachedTestCase, 0, len(rows))
	for _, row := range rows {
		testCases = append(testCases, CachedTestCase{Input: row.Input, Output: row.Output})
	}

	if t.cache != nil {
		if payload, marshalErr := json.Marshal(testCases); marshalErr == nil {
			if err := t.cache.Set(ctx, key, payload, t.ttl).Err(); err != nil {
				t.logger.Warn().Err(err).Uint("question_id", questionID).Msg("failed to store testcase cache")
			}
		}
	}

	return testCases, nil
}
