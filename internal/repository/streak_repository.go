package repository

import (
	"context"
	"fmt"

	"github.com/marwan404/StudyHub/internal/model"
)

type StreakRepository struct {
	kv *KVRepository
}

func NewStreakRepository(kv *KVRepository) *StreakRepository {
	return &StreakRepository{kv: kv}
}

// Load returns the saved streak, or an empty record when none exists or it is unreadable.
func (r *StreakRepository) Load(ctx context.Context) (model.StreakRecord, error) {
	var record model.StreakRecord
	err := r.kv.GetJSON(ctx, KeyStreaks, &record)
	if err == ErrNotFound {
		return model.StreakRecord{}, nil
	}
	if err != nil {
		return model.StreakRecord{}, fmt.Errorf("load streak: %w", err)
	}
	if record.Current < 0 {
		record.Current = 0
	}
	if record.Longest < 0 {
		record.Longest = 0
	}
	return record, nil
}

func (r *StreakRepository) Save(ctx context.Context, record model.StreakRecord) error {
	if err := r.kv.PutJSON(ctx, KeyStreaks, record); err != nil {
		return fmt.Errorf("save streak: %w", err)
	}
	return nil
}
