package database

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.New(io.Discard)
	db, err := NewDB(":memory:", &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func createUser(t *testing.T, db *DB, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com"}
	require.NoError(t, db.CreateUser(context.Background(), user))
	return user
}

func createItem(t *testing.T, db *DB, owner *models.User, name string) *models.Item {
	t.Helper()
	item := &models.Item{Name: name, Description: name + " description", Available: true, OwnerID: owner.ID}
	require.NoError(t, db.CreateItem(context.Background(), item))
	return item
}

func TestNewDB_DirectoryCreation(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger, WithBusyTimeout(1000))
	require.NoError(t, err)
	defer db.Close()

	assert.FileExists(t, dbPath)
}

func TestNewDB_Reopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shareit.db")
	logger := zerolog.Nop()

	db, err := NewDB(dbPath, &logger)
	require.NoError(t, err)
	createUser(t, db, "ann")
	require.NoError(t, db.Close())

	// schema creation is idempotent
	db, err = NewDB(dbPath, &logger)
	require.NoError(t, err)
	defer db.Close()

	users, err := db.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestDB_Ping(t *testing.T) {
	db := setupTestDB(t)
	assert.NoError(t, db.PingContext(context.Background()))
}

func TestTimeFormatIsSortable(t *testing.T) {
	early := time.Date(2030, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3*3600))
	late := early.Add(time.Nanosecond)

	assert.Less(t, formatTime(early), formatTime(late))
	assert.Len(t, formatTime(early), len(formatTime(late)))

	parsed, err := parseTime(formatTime(early))
	require.NoError(t, err)
	assert.True(t, parsed.Equal(early))
}

func TestPrefixed(t *testing.T) {
	assert.Equal(t, "u.id, u.name", prefixed("u", "id, name"))
}

func TestWithNow_StampsRows(t *testing.T) {
	current := testNow
	logger := zerolog.Nop()
	db, err := NewDB(":memory:", &logger, WithNow(func() time.Time { return current }))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	booker := createUser(t, db, "booker")
	assert.True(t, owner.CreatedAt.Equal(testNow))
	item := createItem(t, db, owner, "Drill")
	assert.True(t, item.UpdatedAt.Equal(testNow))

	created := testNow.Add(time.Minute)
	current = created
	booking := createBooking(t, db, item, booker, testNow.Add(time.Hour), testNow.Add(2*time.Hour), models.StatusWaiting)
	assert.True(t, booking.CreatedAt.Equal(created))

	decided := testNow.Add(10 * time.Minute)
	current = decided
	require.NoError(t, db.UpdateBookingStatusWithVersion(ctx, booking.ID, booking.Version, models.StatusApproved))

	got, err := db.GetBooking(ctx, booking.ID)
	require.NoError(t, err)
	assert.True(t, got.CreatedAt.Equal(created), got.CreatedAt)
	assert.True(t, got.UpdatedAt.Equal(decided), got.UpdatedAt)

	request := &models.ItemRequest{Description: "need a ladder", RequestorID: booker.ID}
	require.NoError(t, db.CreateRequest(ctx, request))
	assert.True(t, request.Created.Equal(decided))
}

type failingResult struct{ err error }

func (r failingResult) LastInsertId() (int64, error) { return 0, r.err }
func (r failingResult) RowsAffected() (int64, error) { return 0, r.err }

func TestRowsAffected_PropagatesDriverError(t *testing.T) {
	driverErr := errors.New("rows affected not supported")

	_, err := rowsAffected(failingResult{err: driverErr})
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
	assert.NotErrorIs(t, err, ErrConcurrentModification)
	assert.Contains(t, err.Error(), "failed to get affected rows")
}
