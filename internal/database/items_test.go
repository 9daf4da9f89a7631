package database

import (
	"context"
	"testing"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemCRUD(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	item := createItem(t, db, owner, "Drill")

	got, err := db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got.Name)
	assert.True(t, got.Available)
	assert.Nil(t, got.RequestID)

	got.Available = false
	got.Description = "broken"
	require.NoError(t, db.UpdateItem(ctx, got))

	got, err = db.GetItemByID(ctx, item.ID)
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Equal(t, "broken", got.Description)

	_, err = db.GetItemByID(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, db.UpdateItem(ctx, &models.Item{ID: 999}), domain.ErrNotFound)
}

func TestCreateItemUnknownOwner(t *testing.T) {
	db := setupTestDB(t)
	err := db.CreateItem(context.Background(), &models.Item{Name: "x", Description: "y", OwnerID: 77})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetItemsByOwner(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	other := createUser(t, db, "other")
	first := createItem(t, db, owner, "Drill")
	createItem(t, db, other, "Saw")
	second := createItem(t, db, owner, "Hammer")

	items, err := db.GetItemsByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, first.ID, items[0].ID)
	assert.Equal(t, second.ID, items[1].ID)
}

func TestSearchAvailableItems(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	drill := createItem(t, db, owner, "Power DRILL")
	hidden := createItem(t, db, owner, "Drill bits")
	hidden.Available = false
	require.NoError(t, db.UpdateItem(ctx, hidden))
	createItem(t, db, owner, "Saw 100%")

	items, err := db.SearchAvailableItems(ctx, "drill")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, drill.ID, items[0].ID)

	items, err = db.SearchAvailableItems(ctx, "description")
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = db.SearchAvailableItems(ctx, "   ")
	require.NoError(t, err)
	assert.Empty(t, items)

	// wildcard characters are matched literally
	items, err = db.SearchAvailableItems(ctx, "0%")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Saw 100%", items[0].Name)

	items, err = db.SearchAvailableItems(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetItemsByRequests(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	requestor := createUser(t, db, "requestor")
	owner := createUser(t, db, "owner")

	request := &models.ItemRequest{Description: "need a ladder", RequestorID: requestor.ID}
	require.NoError(t, db.CreateRequest(ctx, request))

	answer := &models.Item{Name: "Ladder", Description: "3m", Available: true, OwnerID: owner.ID, RequestID: &request.ID}
	require.NoError(t, db.CreateItem(ctx, answer))
	createItem(t, db, owner, "Unrelated")

	items, err := db.GetItemsByRequests(ctx, []int64{request.ID})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, answer.ID, items[0].ID)
	require.NotNil(t, items[0].RequestID)
	assert.Equal(t, request.ID, *items[0].RequestID)

	items, err = db.GetItemsByRequests(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
