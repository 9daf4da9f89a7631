package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

const requestColumns = `id, description, requestor_id, created`

func (db *DB) CreateRequest(ctx context.Context, request *models.ItemRequest) error {
	if request.Created.IsZero() {
		request.Created = db.timestamp()
	}

	query := `INSERT INTO requests (description, requestor_id, created) VALUES (?, ?, ?)`
	result, err := db.ExecContext(ctx, query, request.Description, request.RequestorID, formatTime(request.Created))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("user %d not found", request.RequestorID)
		}
		return fmt.Errorf("failed to create request: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	request.ID = id
	return nil
}

func (db *DB) GetRequest(ctx context.Context, id int64) (*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE id = ?`
	request, err := scanRequest(db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundf("request %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get request: %w", err)
	}
	return request, nil
}

// GetRequestsByRequestor returns the user's own requests, newest first.
func (db *DB) GetRequestsByRequestor(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requestor_id = ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, requestorID)
}

// GetRequestsExcept returns everybody else's requests, newest first.
func (db *DB) GetRequestsExcept(ctx context.Context, requestorID int64) ([]*models.ItemRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM requests WHERE requestor_id <> ? ORDER BY created DESC, id DESC`
	return db.queryRequests(ctx, query, requestorID)
}

func (db *DB) queryRequests(ctx context.Context, query string, args ...any) ([]*models.ItemRequest, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.ItemRequest{}
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan request: %w", err)
		}
		requests = append(requests, request)
	}
	return requests, rows.Err()
}

func scanRequest(row scanner) (*models.ItemRequest, error) {
	var (
		request models.ItemRequest
		created string
	)
	if err := row.Scan(&request.ID, &request.Description, &request.RequestorID, &created); err != nil {
		return nil, err
	}
	var err error
	if request.Created, err = parseTime(created); err != nil {
		return nil, err
	}
	request.Items = []*models.Item{}
	return &request, nil
}
