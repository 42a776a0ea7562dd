package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InsertLead stores a lead form submission and returns its ID
func (db *DB) InsertLead(ctx context.Context, form, name, email, phone string, payload []byte) (string, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO leads (form, name, email, phone, payload)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		form, name, email, phone, payload,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to insert %s lead: %w", form, err)
	}
	return id.String(), nil
}

// ListLeads returns the most recent submissions of a form, newest first.
// An empty form lists every form.
func (db *DB) ListLeads(ctx context.Context, form string, limit int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, form, name, email, phone, payload, created_at
		 FROM leads
		 WHERE ($1 = '' OR form = $1)
		 ORDER BY created_at DESC
		 LIMIT $2`,
		form, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer rows.Close()

	var leads []Lead
	for rows.Next() {
		var l Lead
		if err := rows.Scan(&l.ID, &l.Form, &l.Name, &l.Email, &l.Phone, &l.Payload, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating leads: %w", err)
	}
	return leads, nil
}
