package service

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sainanduk/problemsolving-go/internal/dto"
	"github.com/sainanduk/problemsolving-go/internal/models"
	"github.com/sainanduk/problemsolving-go/internal/repository"
)

func newTagService(t *testing.T, dsn string) TagService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Tag{}))

	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewTagService(repository.NewTagRepository(db), validate, zerolog.Nop())
}

func TestTagLifecycle(t *testing.T) {
	svc := newTagService(t, "file:tag_lifecycle?mode=memory&cache=shared")
	ctx := context.Background()

	created, err := svc.Create(ctx, dto.TagRequest{Name: "dynamic-programming", Description: "DP problems"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	updated, err := svc.Update(ctx, created.ID, dto.TagRequest{Name: "dp", Description: "DP problems"})
	require.NoError(t, err)
	require.Equal(t, "dp", updated.Name)

	tags, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, tags, 1)

	require.NoError(t, svc.Delete(ctx, created.ID))
	require.ErrorIs(t, svc.Delete(ctx, created.ID), ErrTagNotFound)
}

func TestTagNotFound(t *testing.T) {
	svc := newTagService(t, "file:tag_missing?mode=memory&cache=shared")

	_, err := svc.Get(context.Background(), 404)
	require.ErrorIs(t, err, ErrTagNotFound)

	_, err = svc.Update(context.Background(), 404, dto.TagRequest{Name: "ghost"})
	require.ErrorIs(t, err, ErrTagNotFound)
}
