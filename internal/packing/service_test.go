package packing_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/packwise/packwise/internal/packing"
	"github.com/packwise/packwise/internal/trip"
)

func TestService_CreateAndGet(t *testing.T) {
	service := packing.NewService(packing.NewInMemoryRepository())
	ctx := context.Background()

	items := packing.Generate(trip.Parameters{DurationDays: 2}, nil)
	created, err := service.Create(ctx, "user123", "trp_1", items)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(created.ID, "pkl_"))
	assert.Equal(t, items, created.Items)

	got, err := service.Get(ctx, "user123", "trp_1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = service.Get(ctx, "intruder", "trp_1")
	assert.ErrorIs(t, err, packing.ErrChecklistNotFound)
}

func TestService_Create_Duplicate(t *testing.T) {
	service := packing.NewService(packing.NewInMemoryRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, "user123", "trp_1", packing.NewList())
	require.NoError(t, err)

	_, err = service.Create(ctx, "user123", "trp_1", packing.NewList())
	assert.ErrorIs(t, err, packing.ErrChecklistExists)
}

func TestService_Modify(t *testing.T) {
	service := packing.NewService(packing.NewInMemoryRepository())
	ctx := context.Background()

	created, err := service.Create(ctx, "user123", "trp_1", packing.Generate(trip.Parameters{DurationDays: 2}, nil))
	require.NoError(t, err)

	updated, err := service.Modify(ctx, "user123", "trp_1", func(c *packing.Checklist) error {
		c.SetNotes("Remember the adapter")
		return c.TogglePacked(packing.CategoryDocuments, 0)
	})
	require.NoError(t, err)
	assert.Equal(t, "Remember the adapter", updated.Notes)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt) || updated.UpdatedAt.Equal(created.UpdatedAt))

	got, err := service.Get(ctx, "user123", "trp_1")
	require.NoError(t, err)
	assert.True(t, got.Items[packing.CategoryDocuments][0].Packed)
	assert.Equal(t, "Remember the adapter", got.Notes)
}

func TestService_Modify_ErrorLeavesListUnchanged(t *testing.T) {
	service := packing.NewService(packing.NewInMemoryRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, "user123", "trp_1", packing.Generate(trip.Parameters{DurationDays: 2}, nil))
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = service.Modify(ctx, "user123", "trp_1", func(c *packing.Checklist) error {
		c.SetNotes("lost")
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := service.Get(ctx, "user123", "trp_1")
	require.NoError(t, err)
	assert.Empty(t, got.Notes)
}

func TestService_Modify_NotFound(t *testing.T) {
	service := packing.NewService(packing.NewInMemoryRepository())

	_, err := service.Modify(context.Background(), "user123", "trp_missing", func(*packing.Checklist) error {
		return nil
	})
	assert.ErrorIs(t, err, packing.ErrChecklistNotFound)
}

func TestService_Delete(t *testing.T) {
	service := packing.NewService(packing.NewInMemoryRepository())
	ctx := context.Background()

	_, err := service.Create(ctx, "user123", "trp_1", packing.NewList())
	require.NoError(t, err)

	require.NoError(t, service.Delete(ctx, "user123", "trp_1"))

	_, err = service.Get(ctx, "user123", "trp_1")
	assert.ErrorIs(t, err, packing.ErrChecklistNotFound)
}

func TestInMemoryRepository_Update_StaleVersion(t *testing.T) {
	repo := packing.NewInMemoryRepository()
	service := packing.NewService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, "user123", "trp_1", packing.Generate(trip.Parameters{DurationDays: 2}, nil))
	require.NoError(t, err)

	first, err := repo.GetByTrip(ctx, "user123", "trp_1")
	require.NoError(t, err)
	second, err := repo.GetByTrip(ctx, "user123", "trp_1")
	require.NoError(t, err)

	require.NoError(t, first.TogglePacked(packing.CategoryDocuments, 0))
	require.NoError(t, repo.Update(ctx, first))
	assert.Equal(t, 2, first.Version)

	second.SetNotes("stale")
	assert.ErrorIs(t, repo.Update(ctx, second), packing.ErrChecklistConflict)

	got, err := repo.GetByTrip(ctx, "user123", "trp_1")
	require.NoError(t, err)
	assert.True(t, got.Items[packing.CategoryDocuments][0].Packed)
	assert.Empty(t, got.Notes)
}

// interleavedRepository lets another writer save between Modify's read and
// its write, once.
type interleavedRepository struct {
	*packing.InMemoryRepository
	other func(c *packing.Checklist)
}

func (r *interleavedRepository) Update(ctx context.Context, c *packing.Checklist) error {
	if other := r.other; other != nil {
		r.other = nil
		current, err := r.InMemoryRepository.GetByTrip(ctx, c.UserID, c.TripID)
		if err != nil {
			return err
		}
		other(current)
		if err := r.InMemoryRepository.Update(ctx, current); err != nil {
			return err
		}
	}
	return r.InMemoryRepository.Update(ctx, c)
}

func TestService_Modify_ConcurrentWritesBothApply(t *testing.T) {
	repo := &interleavedRepository{InMemoryRepository: packing.NewInMemoryRepository()}
	service := packing.NewService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, "user123", "trp_1", packing.Generate(trip.Parameters{DurationDays: 2}, nil))
	require.NoError(t, err)

	repo.other = func(c *packing.Checklist) {
		require.NoError(t, c.TogglePacked(packing.CategoryEssentials, 0))
	}

	var calls int
	updated, err := service.Modify(ctx, "user123", "trp_1", func(c *packing.Checklist) error {
		calls++
		return c.TogglePacked(packing.CategoryDocuments, 0)
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "reapplied after the conflicting write")
	assert.Equal(t, 3, updated.Version)

	got, err := service.Get(ctx, "user123", "trp_1")
	require.NoError(t, err)
	assert.True(t, got.Items[packing.CategoryEssentials][0].Packed)
	assert.True(t, got.Items[packing.CategoryDocuments][0].Packed)
}

type alwaysConflicting struct{ *packing.InMemoryRepository }

func (alwaysConflicting) Update(context.Context, *packing.Checklist) error {
	return packing.ErrChecklistConflict
}

func TestService_Modify_GivesUpAfterRepeatedConflicts(t *testing.T) {
	repo := alwaysConflicting{packing.NewInMemoryRepository()}
	service := packing.NewService(repo)
	ctx := context.Background()

	_, err := service.Create(ctx, "user123", "trp_1", packing.Generate(trip.Parameters{DurationDays: 2}, nil))
	require.NoError(t, err)

	_, err = service.Modify(ctx, "user123", "trp_1", func(c *packing.Checklist) error {
		return c.TogglePacked(packing.CategoryDocuments, 0)
	})
	assert.ErrorIs(t, err, packing.ErrChecklistConflict)
}
