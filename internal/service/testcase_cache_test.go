package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

func TestTestcaseCacheMissPopulatesRedis(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open("file:testcase_miss?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Question{}, &models.TestCase{}))

	question := models.Question{Slug: "reverse-list", Title: "Reverse List", Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&models.TestCase{QuestionID: question.ID, Input: "1 2 3", Output: "3 2 1"}).Error)
	require.NoError(t, db.Create(&models.TestCase{QuestionID: question.ID, Input: "7", Output: "7"}).Error)

	cache := NewTestcaseCache(repository.NewTestCaseRepository(db), redisClient, time.Hour, zerolog.Nop())

	ctx := context.Background()
	testCases, err := cache.Get(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, testCases, 2)
	require.Equal(t, "1 2 3", testCases[0].Input)
	require.Equal(t, "3 2 1", testCases[0].Output)

	stored, err := mini.Get(cacheKey(question.ID))
	require.NoError(t, err)

	var cached []CachedTestCase
	require.NoError(t, json.Unmarshal([]byte(stored), &cached))
	require.Equal(t, testCases, cached)

	ttl := mini.TTL(cacheKey(question.ID))
	require.Equal(t, time.Hour, ttl)
}

func TestTestcaseCacheHitSkipsDatabase(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open("file:testcase_hit?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Question{}, &models.TestCase{}))

	question := models.Question{Slug: "fizzbuzz", Title: "FizzBuzz", Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&models.TestCase{QuestionID: question.ID, Input: "3", Output: "Fizz"}).Error)

	cache := NewTestcaseCache(repository.NewTestCaseRepository(db), redisClient, time.Hour, zerolog.Nop())

	ctx := context.Background()
	first, err := cache.Get(ctx, question.ID)
	require.NoError(t, err)
	require.Len(t, first, 1)

	// Database edits are invisible until the key expires.
	require.NoError(t, db.Model(&models.TestCase{}).Where("question_id = ?", question.ID).Update("output", "Changed").Error)

	second, err := cache.Get(ctx, question.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)

	mini.FastForward(2 * time.Hour)

	third, err := cache.Get(ctx, question.ID)
	require.NoError(t, err)
	require.Equal(t, "Changed", third[0].Output)
}

func TestTestcaseCacheEmptyQuestion(t *testing.T) {
	mini, err := miniredis.Run()
	require.NoError(t, err)
	defer mini.Close()

	redisClient := redis.NewClient(&redis.Options{Addr: mini.Addr()})

	db, err := gorm.Open(sqlite.Open("file:testcase_empty?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Question{}, &models.TestCase{}))

	cache := NewTestcaseCache(repository.NewTestCaseRepository(db), redisClient, time.Hour, zerolog.Nop())

	_, err = cache.Get(context.Background(), 999)
	require.ErrorIs(t, err, ErrNoTestcases)
	require.False(t, mini.Exists(cacheKey(999)))
}

func TestTestcaseCacheWorksWithoutRedis(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:testcase_noredis?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Question{}, &models.TestCase{}))

	question := models.Question{Slug: "plain", Title: "Plain", Difficulty: models.DifficultyEasy}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&models.TestCase{QuestionID: question.ID, Input: "a", Output: "b"}).Error)

	cache := NewTestcaseCache(repository.NewTestCaseRepository(db), nil, time.Hour, zerolog.Nop())

	testCases, err := cache.Get(context.Background(), question.ID)
	require.NoError(t, err)
	require.Len(t, testCases, 1)
}
