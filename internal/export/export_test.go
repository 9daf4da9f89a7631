package export

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleBookings() []*models.Booking {
	start := time.Date(2030, 1, 2, 10, 30, 0, 0, time.UTC)
	item := &models.Item{ID: 1, Name: "Drill", OwnerID: 1}
	booker := &models.User{ID: 2, Name: "Bob", Email: "bob@example.com"}
	return []*models.Booking{
		{ID: 7, Start: start, End: start.Add(time.Hour), Item: item, Booker: booker, Status: models.StatusApproved},
		{ID: 8, Start: start.Add(-time.Hour), End: start, Item: item, Booker: booker, Status: models.StatusWaiting},
	}
}

func TestWriteBookings(t *testing.T) {
	var buf bytes.Buffer
	exp := NewExporter(100, nil)

	require.NoError(t, exp.WriteBookings(&buf, "Owner bookings", sampleBookings()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{models.ExportSheetName}, f.GetSheetList())

	rows, err := f.GetRows(models.ExportSheetName)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Owner bookings", rows[0][0])
	assert.Equal(t, headers, rows[1])
	assert.Equal(t, []string{"7", "Drill", "Bob", "bob@example.com", "02.01.2030 10:30", "02.01.2030 11:30", "APPROVED"}, rows[2])
	assert.Equal(t, "8", rows[3][0])
	assert.Equal(t, "WAITING", rows[3][6])
}

func TestWriteBookingsLocation(t *testing.T) {
	var buf bytes.Buffer
	exp := NewExporter(0, time.FixedZone("MSK", 3*3600))

	require.NoError(t, exp.WriteBookings(&buf, "t", sampleBookings()[:1]))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	value, err := f.GetCellValue(models.ExportSheetName, "E3")
	require.NoError(t, err)
	assert.Equal(t, "02.01.2030 13:30", value)
}

func TestWriteBookingsEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewExporter(10, nil).WriteBookings(&buf, "empty", nil))
	assert.NotZero(t, buf.Len())
}

func TestWriteBookingsTooMany(t *testing.T) {
	var buf bytes.Buffer
	err := NewExporter(1, nil).WriteBookings(&buf, "t", sampleBookings())
	assert.True(t, errors.Is(err, ErrTooManyRows))
	assert.Zero(t, buf.Len())
}
