package database

import (
	"context"
	"testing"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequests(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	ann := createUser(t, db, "ann")
	bob := createUser(t, db, "bob")

	older := &models.ItemRequest{Description: "ladder", RequestorID: ann.ID, Created: testNow}
	newer := &models.ItemRequest{Description: "drill", RequestorID: ann.ID, Created: testNow.Add(time.Hour)}
	foreign := &models.ItemRequest{Description: "saw", RequestorID: bob.ID, Created: testNow}
	for _, r := range []*models.ItemRequest{older, newer, foreign} {
		require.NoError(t, db.CreateRequest(ctx, r))
	}

	own, err := db.GetRequestsByRequestor(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, own, 2)
	assert.Equal(t, newer.ID, own[0].ID)
	assert.Equal(t, older.ID, own[1].ID)

	others, err := db.GetRequestsExcept(ctx, ann.ID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, foreign.ID, others[0].ID)

	got, err := db.GetRequest(ctx, older.ID)
	require.NoError(t, err)
	assert.Equal(t, "ladder", got.Description)
	assert.NotNil(t, got.Items)

	_, err = db.GetRequest(ctx, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = db.CreateRequest(ctx, &models.ItemRequest{Description: "x", RequestorID: 999})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
