package database

import (
	"context"
	"fmt"

	"shareit/internal/domain"
	"shareit/internal/models"
)

func (db *DB) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.Author == nil {
		return fmt.Errorf("comment author is required")
	}
	if comment.Created.IsZero() {
		comment.Created = db.timestamp()
	}

	query := `INSERT INTO comments (text, item_id, author_id, created) VALUES (?, ?, ?, ?)`
	result, err := db.ExecContext(ctx, query, comment.Text, comment.ItemID, comment.Author.ID, formatTime(comment.Created))
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("item %d or user %d not found", comment.ItemID, comment.Author.ID)
		}
		return fmt.Errorf("failed to create comment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}
	comment.ID = id
	return nil
}

// GetItemComments returns comments of an item, oldest first.
func (db *DB) GetItemComments(ctx context.Context, itemID int64) ([]*models.Comment, error) {
	query := `SELECT c.id, c.text, c.item_id, c.created, ` + prefixed("u", userColumns) + `
              FROM comments c JOIN users u ON u.id = c.author_id
              WHERE c.item_id = ? ORDER BY c.created, c.id`
	rows, err := db.QueryContext(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to get item comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var (
			c                           models.Comment
			author                      models.User
			created, uCreated, uUpdated string
		)
		err := rows.Scan(&c.ID, &c.Text, &c.ItemID, &created,
			&author.ID, &author.Name, &author.Email, &uCreated, &uUpdated)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		if c.Created, err = parseTime(created); err != nil {
			return nil, err
		}
		if author.CreatedAt, err = parseTime(uCreated); err != nil {
			return nil, err
		}
		if author.UpdatedAt, err = parseTime(uUpdated); err != nil {
			return nil, err
		}
		c.Author = &author
		comments = append(comments, &c)
	}
	return comments, rows.Err()
}
