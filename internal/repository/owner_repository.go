package repository

import (
	"context"
	"fmt"

	"github.com/marwan404/StudyHub/internal/model"
)

type OwnerRepository struct {
	kv *KVRepository
}

func NewOwnerRepository(kv *KVRepository) *OwnerRepository {
	return &OwnerRepository{kv: kv}
}

func (r *OwnerRepository) Get(ctx context.Context) (*model.Owner, error) {
	var owner model.Owner
	if err := r.kv.GetJSON(ctx, KeyOwner, &owner); err != nil {
		if err == ErrNotFound {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get owner: %w", err)
	}
	if owner.PasswordHash == "" {
		return nil, ErrNotFound
	}
	return &owner, nil
}

func (r *OwnerRepository) Create(ctx context.Context, owner *model.Owner) error {
	if err := r.kv.PutJSON(ctx, KeyOwner, owner); err != nil {
		return fmt.Errorf("create owner: %w", err)
	}
	return nil
}
