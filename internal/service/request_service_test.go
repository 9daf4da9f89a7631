package service

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestService(t *testing.T) {
	f := newCatalogFixture(t)
	ctx := context.Background()
	logger := zerolog.Nop()
	svc := NewRequestService(f.db, f.db, f.db, f.clock, &logger)

	_, err := svc.CreateRequest(ctx, f.booker.ID, "  ")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = svc.CreateRequest(ctx, 404, "ladder")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	ladder, err := svc.CreateRequest(ctx, f.booker.ID, "need a ladder")
	require.NoError(t, err)
	assert.Empty(t, ladder.Items)

	f.clock.Add(time.Minute)
	drill, err := svc.CreateRequest(ctx, f.booker.ID, "need a drill")
	require.NoError(t, err)

	answer, err := f.items.CreateItem(ctx, f.owner.ID, models.ItemDraft{
		Name: "Ladder", Description: "3m", Available: boolPtr(true), RequestID: &ladder.ID,
	})
	require.NoError(t, err)

	own, err := svc.ListOwnRequests(ctx, f.booker.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, drill.ID, own[0].ID)
	assert.Empty(t, own[0].Items)
	require.Len(t, own[1].Items, 1)
	assert.Equal(t, answer.ID, own[1].Items[0].ID)

	others, err := svc.ListOtherRequests(ctx, f.owner.ID, models.Page{})
	require.NoError(t, err)
	assert.Len(t, others, 2)

	paged, err := svc.ListOtherRequests(ctx, f.owner.ID, models.Page{From: 1, Size: 1})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, ladder.ID, paged[0].ID)

	_, err = svc.ListOtherRequests(ctx, f.owner.ID, models.Page{From: -1})
	assert.ErrorIs(t, err, domain.ErrValidation)

	mine, err := svc.ListOtherRequests(ctx, f.booker.ID, models.Page{})
	require.NoError(t, err)
	assert.Empty(t, mine)

	got, err := svc.GetRequest(ctx, f.owner.ID, ladder.ID)
	require.NoError(t, err)
	assert.Equal(t, "need a ladder", got.Description)
	assert.Len(t, got.Items, 1)

	_, err = svc.GetRequest(ctx, f.owner.ID, 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = svc.GetRequest(ctx, 404, ladder.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
