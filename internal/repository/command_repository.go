package repository

import (
	"context"
	"database/sql"

	"github.com/latch-net/latch-be/internal/model"
)

// commandRepository is the implementation of ICommandRepository.
type commandRepository struct {
	db *sql.DB
}

// NewCommandRepository is the constructor for commandRepository.
func NewCommandRepository(db *sql.DB) ICommandRepository {
	return &commandRepository{db: db}
}

// Create inserts one dispatched command and its outcome into command history.
func (r *commandRepository) Create(ctx context.Context, record *model.CommandRecord) error {
	query := `
		INSERT INTO command_history (user_id, action, request_method, request_url, request_payload, success, result, duration_ms)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		record.UserID,
		record.Action,
		record.Method,
		record.URL,
		record.Payload,
		record.Success,
		record.Result,
		record.DurationMs,
	)

	return err
}

// GetByUserID retrieves the command history for one operator, newest first.
func (r *commandRepository) GetByUserID(ctx context.Context, userID int) ([]*model.CommandRecord, error) {
	query := `
		SELECT id, user_id, action, request_method, request_url, request_payload, success, result, duration_ms, executed_at
		FROM command_history
		WHERE user_id = $1
		ORDER BY executed_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*model.CommandRecord
	for rows.Next() {
		var rec model.CommandRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.UserID,
			&rec.Action,
			&rec.Method,
			&rec.URL,
			&rec.Payload,
			&rec.Success,
			&rec.Result,
			&rec.DurationMs,
			&rec.ExecutedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, &rec)
	}

	return records, rows.Err()
}
