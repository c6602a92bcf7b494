package repo

import (
	"context"
	"fmt"

	"github.com/fsr-protokoll/editor/internal/i18n"
)

// LanguageKey is the slot holding the selected UI language.
const LanguageKey = "fsr-protocol-lang"

// LanguageRepo persists the selected UI language.
type LanguageRepo interface {
	// Get returns the stored language, normalized.
	// Returns domain.ErrNotFound if none was stored yet.
	Get(ctx context.Context) (i18n.Language, error)

	// Set stores lang.
	Set(ctx context.Context, lang i18n.Language) error
}

type slotLanguageRepo struct {
	slots SlotStore
}

// NewLanguageRepo constructs a LanguageRepo storing its value in slots.
func NewLanguageRepo(slots SlotStore) LanguageRepo {
	return &slotLanguageRepo{slots: slots}
}

func (r *slotLanguageRepo) Get(ctx context.Context) (i18n.Language, error) {
	raw, err := r.slots.Get(ctx, LanguageKey)
	if err != nil {
		return "", fmt.Errorf("repo.LanguageRepo.Get: %w", err)
	}
	return i18n.Normalize(raw), nil
}

func (r *slotLanguageRepo) Set(ctx context.Context, lang i18n.Language) error {
	if err := r.slots.Put(ctx, LanguageKey, string(lang)); err != nil {
		return fmt.Errorf("repo.LanguageRepo.Set: %w", err)
	}
	return nil
}
