package repository

import (
	"context"
	"sync"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	domainRepo "github.com/FRANKLIN09020/smart-billing/internal/domain/repository"
	"github.com/google/uuid"
)

type memoryIdempotencyRepository struct {
	mu   sync.RWMutex
	keys map[string]entity.IdempotencyKey
	now  func() time.Time
}

// NewMemoryIdempotencyRepository keeps idempotency keys in process memory.
// Used when the terminal runs without a database.
func NewMemoryIdempotencyRepository() domainRepo.IdempotencyRepository {
	return &memoryIdempotencyRepository{
		keys: make(map[string]entity.IdempotencyKey),
		now:  time.Now,
	}
}

func memoryKey(key, operator string) string {
	return operator + "\x00" + key
}

func (r *memoryIdempotencyRepository) GetByKey(_ context.Context, key, operator string) (*entity.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ikey, ok := r.keys[memoryKey(key, operator)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *memoryIdempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	if ikey.ID == uuid.Nil {
		ikey.ID = uuid.New()
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = r.now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.keys[memoryKey(ikey.Key, ikey.Operator)] = *ikey
	return nil
}

func (r *memoryIdempotencyRepository) DeleteExpired(_ context.Context) error {
	now := r.now()

	r.mu.Lock()
	defer r.mu.Unlock()
	for k, ikey := range r.keys {
		if now.After(ikey.ExpiresAt) {
			delete(r.keys, k)
		}
	}
	return nil
}
