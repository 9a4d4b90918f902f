package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/assetlabel/inventory/internal/pkg/identifier"
)

// Allocator issues asset identifiers. The sequence is global: it keeps
// counting across years and is never reused.
type Allocator interface {
	Next(ctx context.Context) (string, error)
}

type allocator struct {
	counters repo.CounterRepo
	now      func() time.Time
}

func NewAllocator(counters repo.CounterRepo, now func() time.Time) Allocator {
	if now == nil {
		now = time.Now
	}
	return &allocator{counters: counters, now: now}
}

func (a *allocator) Next(ctx context.Context) (string, error) {
	seq, err := a.counters.Increment(ctx, model.AssetIDCounter)
	if err != nil {
		return "", fmt.Errorf("allocate asset id: %w", err)
	}
	id, err := identifier.Format(a.now().Year(), seq)
	if errors.Is(err, identifier.ErrSequenceExhausted) {
		return "", &apperr.Error{Kind: apperr.KindConflict, Message: "asset identifier sequence exhausted", Err: err}
	}
	if err != nil {
		return "", fmt.Errorf("format asset id: %w", err)
	}
	return id, nil
}
