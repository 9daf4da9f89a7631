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

func TestComments(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	author := createUser(t, db, "author")
	item := createItem(t, db, owner, "Drill")

	first := &models.Comment{Text: "great", ItemID: item.ID, Author: author, Created: testNow}
	second := &models.Comment{Text: "still great", ItemID: item.ID, Author: author, Created: testNow.Add(time.Minute)}
	require.NoError(t, db.CreateComment(ctx, second))
	require.NoError(t, db.CreateComment(ctx, first))

	comments, err := db.GetItemComments(ctx, item.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "great", comments[0].Text)
	assert.Equal(t, "still great", comments[1].Text)
	assert.Equal(t, "author", comments[0].Author.Name)
	assert.True(t, comments[0].Created.Equal(testNow))

	empty, err := db.GetItemComments(ctx, 999)
	require.NoError(t, err)
	assert.Empty(t, empty)

	err = db.CreateComment(ctx, &models.Comment{Text: "x", ItemID: 999, Author: author})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
