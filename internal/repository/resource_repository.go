package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/marwan404/StudyHub/internal/model"
)

type ResourceRepository struct {
	db *sql.DB
}

func NewResourceRepository(db *sql.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// Create stores resource at the end of the ordering and sets its Position.
func (r *ResourceRepository) Create(ctx context.Context, resource *model.Resource) error {
	tagsJSON, err := encodeTags(resource.Tags)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM resources`).Scan(&next); err != nil {
		return fmt.Errorf("next resource position: %w", err)
	}
	resource.Position = next

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO resources (
			id, name, url, description, logo, tags_json, visits, position, date_added, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		resource.ID,
		resource.Name,
		resource.URL,
		resource.Description,
		resource.Logo,
		tagsJSON,
		resource.Visits,
		resource.Position,
		formatTime(resource.DateAdded),
		formatTime(resource.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("create resource: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit resource: %w", err)
	}
	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, resource *model.Resource) error {
	tagsJSON, err := encodeTags(resource.Tags)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(
		ctx,
		`UPDATE resources
		 SET name = ?,
		     url = ?,
		     description = ?,
		     logo = ?,
		     tags_json = ?,
		     updated_at = ?
		 WHERE id = ?`,
		resource.Name,
		resource.URL,
		resource.Description,
		resource.Logo,
		tagsJSON,
		formatTime(resource.UpdatedAt),
		resource.ID,
	)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	return requireAffected(result, "update resource")
}

func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM resources WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return requireAffected(result, "delete resource")
}

func (r *ResourceRepository) Get(ctx context.Context, id string) (*model.Resource, error) {
	row := r.db.QueryRowContext(
		ctx,
		`SELECT id, name, url, description, logo, tags_json, visits, position, date_added, updated_at
		 FROM resources
		 WHERE id = ?`,
		id,
	)
	return scanResource(row)
}

// List returns every resource in display order.
func (r *ResourceRepository) List(ctx context.Context) ([]model.Resource, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, name, url, description, logo, tags_json, visits, position, date_added, updated_at
		 FROM resources
		 ORDER BY position ASC, date_added ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()

	resources := make([]model.Resource, 0)
	for rows.Next() {
		resource, scanErr := scanResource(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		resources = append(resources, *resource)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return resources, nil
}

func (r *ResourceRepository) IncrementVisits(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE resources SET visits = visits + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("increment visits: %w", err)
	}
	return requireAffected(result, "increment visits")
}

// Reorder rewrites positions so that ids[i] gets position i.
func (r *ResourceRepository) Reorder(ctx context.Context, ids []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for position, id := range ids {
		result, err := tx.ExecContext(ctx, `UPDATE resources SET position = ? WHERE id = ?`, position, id)
		if err != nil {
			return fmt.Errorf("reorder resource %s: %w", id, err)
		}
		if err := requireAffected(result, "reorder resource"); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reorder: %w", err)
	}
	return nil
}

func (r *ResourceRepository) Totals(ctx context.Context) (count int, visits int, err error) {
	if err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(1), COALESCE(SUM(visits), 0) FROM resources`,
	).Scan(&count, &visits); err != nil {
		return 0, 0, fmt.Errorf("resource totals: %w", err)
	}
	return count, visits, nil
}

func requireAffected(result sql.Result, op string) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	raw, err := json.Marshal(tags)
	if err != nil {
		return "", fmt.Errorf("encode tags: %w", err)
	}
	return string(raw), nil
}

func scanResource(s scanner) (*model.Resource, error) {
	resource := model.Resource{}
	var tagsJSON string
	var dateAdded string
	var updatedAt string
	err := s.Scan(
		&resource.ID,
		&resource.Name,
		&resource.URL,
		&resource.Description,
		&resource.Logo,
		&tagsJSON,
		&resource.Visits,
		&resource.Position,
		&dateAdded,
		&updatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan resource: %w", err)
	}

	resource.Tags = []string{}
	if tagsJSON != "" {
		if err := json.Unmarshal([]byte(tagsJSON), &resource.Tags); err != nil {
			return nil, fmt.Errorf("decode resource tags: %w", err)
		}
	}

	parsedDateAdded, err := parseTime(dateAdded)
	if err != nil {
		return nil, fmt.Errorf("parse resource date_added: %w", err)
	}
	resource.DateAdded = parsedDateAdded

	parsedUpdatedAt, err := parseTime(updatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse resource updated_at: %w", err)
	}
	resource.UpdatedAt = parsedUpdatedAt

	return &resource, nil
}
