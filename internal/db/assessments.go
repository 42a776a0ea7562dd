package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateAssessment stores a scored submission. userID may be nil for
// anonymous visitors.
func (db *DB) CreateAssessment(ctx context.Context, userID *uuid.UUID, answers any, score int, tier string, result any) (uuid.UUID, error) {
	answersJSON, err := json.Marshal(answers)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal answers: %w", err)
	}
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO assessments (user_id, answers, score, tier, result)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		userID, answersJSON, score, tier, resultJSON,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return id, nil
}

// GetAssessment retrieves an assessment by ID
func (db *DB) GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	var a Assessment
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, answers, score, tier, result, created_at
		 FROM assessments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.UserID, &a.Answers, &a.Score, &a.Tier, &a.Result, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &a, nil
}

// ListAssessmentsByUser returns a user's assessments, newest first
func (db *DB) ListAssessmentsByUser(ctx context.Context, userID uuid.UUID) ([]Assessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, answers, score, tier, result, created_at
		 FROM assessments WHERE user_id = $1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var out []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.UserID, &a.Answers, &a.Score, &a.Tier, &a.Result, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating assessments: %w", err)
	}
	return out, nil
}
