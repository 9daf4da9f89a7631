package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"shareit/internal/domain"
	"shareit/internal/models"
)

// bookingSelect joins every booking with its item and booker.
var bookingSelect = `SELECT b.id, b.start_at, b.end_at, b.status, b.version, b.created_at, b.updated_at, ` +
	prefixed("i", itemColumns) + `, ` + prefixed("u", userColumns) + `
              FROM bookings b
              JOIN items i ON i.id = b.item_id
              JOIN users u ON u.id = b.booker_id`

const bookingOrder = ` ORDER BY b.start_at DESC, b.id ASC`

func (db *DB) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `INSERT INTO bookings (start_at, end_at, item_id, booker_id, status, version, created_at, updated_at)
              VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	now := db.timestamp()
	result, err := db.ExecContext(ctx, query,
		formatTime(booking.Start),
		formatTime(booking.End),
		booking.ItemID(),
		booking.BookerID(),
		string(booking.Status),
		1,
		formatTime(now),
		formatTime(now),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("item %d or user %d not found", booking.ItemID(), booking.BookerID())
		}
		return fmt.Errorf("failed to create booking: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	booking.ID = id
	booking.CreatedAt = now
	booking.UpdatedAt = now
	booking.Version = 1

	return nil
}

func (db *DB) GetBooking(ctx context.Context, id int64) (*models.Booking, error) {
	booking, err := scanBooking(db.QueryRowContext(ctx, bookingSelect+` WHERE b.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("booking %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

// UpdateBookingStatusWithVersion moves a WAITING booking to status, provided
// nobody changed it since version was read.
func (db *DB) UpdateBookingStatusWithVersion(ctx context.Context, id, fromVersion int64, status models.BookingStatus) error {
	query := `UPDATE bookings SET status = ?, version = version + 1, updated_at = ?
              WHERE id = ? AND version = ? AND status = ?`
	result, err := db.ExecContext(ctx, query,
		string(status), formatTime(db.timestamp()), id, fromVersion, string(models.StatusWaiting))
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}
	rows, err := rowsAffected(result)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrConcurrentModification
	}
	return nil
}

func (db *DB) FindBookerBookings(ctx context.Context, bookerID int64, filter domain.BookingFilter) ([]*models.Booking, error) {
	return db.findBookings(ctx, "b.booker_id = ?", bookerID, filter)
}

func (db *DB) FindOwnerBookings(ctx context.Context, ownerID int64, filter domain.BookingFilter) ([]*models.Booking, error) {
	return db.findBookings(ctx, "i.owner_id = ?", ownerID, filter)
}

func (db *DB) findBookings(ctx context.Context, scope string, scopeID int64, filter domain.BookingFilter) ([]*models.Booking, error) {
	where := []string{scope}
	args := []any{scopeID}

	clause, stateArgs, err := stateClause(filter)
	if err != nil {
		return nil, err
	}
	if clause != "" {
		where = append(where, clause)
		args = append(args, stateArgs...)
	}

	query := bookingSelect + ` WHERE ` + strings.Join(where, " AND ") + bookingOrder
	return db.queryBookings(ctx, query, args...)
}

// stateClause renders the same windows as models.BookingState.Matches.
func stateClause(filter domain.BookingFilter) (string, []any, error) {
	now := formatTime(filter.Now)
	switch filter.State {
	case models.StateAll:
		return "", nil, nil
	case models.StateCurrent:
		return "b.start_at <= ? AND b.end_at >= ?", []any{now, now}, nil
	case models.StatePast:
		return "b.end_at < ?", []any{now}, nil
	case models.StateFuture:
		return "b.start_at > ?", []any{now}, nil
	case models.StateWaiting:
		return "b.status = ?", []any{string(models.StatusWaiting)}, nil
	case models.StateRejected:
		return "b.status = ?", []any{string(models.StatusRejected)}, nil
	default:
		return "", nil, fmt.Errorf("unsupported booking state filter: %q", filter.State)
	}
}

// LastBookingForItem returns the latest approved booking that already ended, or nil.
func (db *DB) LastBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.item_id = ? AND b.status = ? AND b.end_at < ?
              ORDER BY b.end_at DESC, b.id DESC LIMIT 1`
	return db.optionalBooking(ctx, query, itemID, string(models.StatusApproved), formatTime(now))
}

// NextBookingForItem returns the earliest approved booking that has not started yet, or nil.
func (db *DB) NextBookingForItem(ctx context.Context, itemID int64, now time.Time) (*models.Booking, error) {
	query := bookingSelect + ` WHERE b.item_id = ? AND b.status = ? AND b.start_at > ?
              ORDER BY b.start_at ASC, b.id ASC LIMIT 1`
	return db.optionalBooking(ctx, query, itemID, string(models.StatusApproved), formatTime(now))
}

func (db *DB) HasCompletedBooking(ctx context.Context, itemID, bookerID int64, now time.Time) (bool, error) {
	query := `SELECT EXISTS (
                SELECT 1 FROM bookings
                WHERE item_id = ? AND booker_id = ? AND status = ? AND end_at < ?
              )`
	var exists bool
	err := db.QueryRowContext(ctx, query, itemID, bookerID, string(models.StatusApproved), formatTime(now)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check completed booking: %w", err)
	}
	return exists, nil
}

func (db *DB) optionalBooking(ctx context.Context, query string, args ...any) (*models.Booking, error) {
	booking, err := scanBooking(db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (db *DB) queryBookings(ctx context.Context, query string, args ...any) ([]*models.Booking, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer rows.Close()

	bookings := []*models.Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

func scanBooking(row scanner) (*models.Booking, error) {
	var (
		b                            models.Booking
		item                         models.Item
		booker                       models.User
		status                       string
		requestID                    sql.NullInt64
		start, end, created, updated string
		iCreated, iUpdated           string
		uCreated, uUpdated           string
	)
	err := row.Scan(
		&b.ID, &start, &end, &status, &b.Version, &created, &updated,
		&item.ID, &item.Name, &item.Description, &item.Available, &item.OwnerID, &requestID, &iCreated, &iUpdated,
		&booker.ID, &booker.Name, &booker.Email, &uCreated, &uUpdated,
	)
	if err != nil {
		return nil, err
	}

	if requestID.Valid {
		id := requestID.Int64
		item.RequestID = &id
	}
	b.Status = models.BookingStatus(status)

	for _, f := range []struct {
		dst *time.Time
		raw string
	}{
		{&b.Start, start}, {&b.End, end}, {&b.CreatedAt, created}, {&b.UpdatedAt, updated},
		{&item.CreatedAt, iCreated}, {&item.UpdatedAt, iUpdated},
		{&booker.CreatedAt, uCreated}, {&booker.UpdatedAt, uUpdated},
	} {
		if *f.dst, err = parseTime(f.raw); err != nil {
			return nil, err
		}
	}

	b.Item = &item
	b.Booker = &booker
	return &b, nil
}

// prefixed qualifies a comma separated column list with a table alias.
func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}
