package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/marwan404/StudyHub/internal/model"
)

// PomodoroRepository persists the timer record and the completed-phase history.
type PomodoroRepository struct {
	db *sql.DB
	kv *KVRepository
}

func NewPomodoroRepository(db *sql.DB, kv *KVRepository) *PomodoroRepository {
	return &PomodoroRepository{db: db, kv: kv}
}

// LoadTimer returns the saved record merged over the defaults. A missing
// record yields the defaults with no error; an unreadable one yields the
// defaults together with the error so the caller can log it.
func (r *PomodoroRepository) LoadTimer(ctx context.Context) (model.TimerState, error) {
	state := model.DefaultTimerState()
	err := r.kv.GetJSON(ctx, KeyPomodoro, &state)
	if err == ErrNotFound {
		return model.DefaultTimerState(), nil
	}
	if err != nil {
		return model.DefaultTimerState(), fmt.Errorf("load timer state: %w", err)
	}
	return state, nil
}

func (r *PomodoroRepository) SaveTimer(ctx context.Context, state model.TimerState) error {
	if err := r.kv.PutJSON(ctx, KeyPomodoro, state); err != nil {
		return fmt.Errorf("save timer state: %w", err)
	}
	return nil
}

func (r *PomodoroRepository) RecordPhase(ctx context.Context, record model.PhaseRecord) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO phase_history (id, phase, duration_seconds, session_number, completed_at)
		 VALUES (?, ?, ?, ?, ?)`,
		record.ID,
		string(record.Phase),
		record.DurationSeconds,
		record.SessionNumber,
		formatTime(record.CompletedAt),
	)
	if err != nil {
		return fmt.Errorf("insert phase record: %w", err)
	}
	return nil
}

func (r *PomodoroRepository) ListPhases(ctx context.Context, limit int) ([]model.PhaseRecord, error) {
	rows, err := r.db.QueryContext(
		ctx,
		`SELECT id, phase, duration_seconds, session_number, completed_at
		 FROM phase_history
		 ORDER BY completed_at DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list phases: %w", err)
	}
	defer rows.Close()

	records := make([]model.PhaseRecord, 0, limit)
	for rows.Next() {
		record, scanErr := scanPhaseRecord(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate phases: %w", err)
	}

	return records, nil
}

func scanPhaseRecord(s scanner) (*model.PhaseRecord, error) {
	record := model.PhaseRecord{}
	var phase string
	var completedAt string
	err := s.Scan(
		&record.ID,
		&phase,
		&record.DurationSeconds,
		&record.SessionNumber,
		&completedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan phase record: %w", err)
	}
	record.Phase = model.Phase(phase)

	parsedCompletedAt, err := parseTime(completedAt)
	if err != nil {
		return nil, fmt.Errorf("parse phase completed_at: %w", err)
	}
	record.CompletedAt = parsedCompletedAt
	return &record, nil
}
