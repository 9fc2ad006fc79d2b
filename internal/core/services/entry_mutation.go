package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/SscSPs/cashbook_backend/internal/apperrors"
	"github.com/SscSPs/cashbook_backend/internal/core/domain"
	portsrepo "github.com/SscSPs/cashbook_backend/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/cashbook_backend/internal/core/ports/services"
)

// entryMutator writes cash entries and keeps linked party balances in step.
// Both the cashbook and the change-request review path go through it.
type entryMutator struct {
	entryRepo    portsrepo.CashEntryRepositoryFacade
	categoryRepo portsrepo.CategoryReader
	partyRepo    portsrepo.PartyReader
	partyBalance portssvc.PartyBalanceSvc
}

// resolveRefs checks the entry's category and party and fills in their names.
func (m *entryMutator) resolveRefs(ctx context.Context, entry *domain.CashEntry) error {
	if entry.CategoryID != nil {
		cat, err := m.categoryRepo.FindCategoryByID(ctx, entry.BusinessID, *entry.CategoryID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("category not found")
			}
			return fmt.Errorf("failed to load category: %w", err)
		}
		if !cat.IsActive {
			return apperrors.NewValidationFailedError("category is inactive")
		}
		if !cat.Allows(entry.EntryType) {
			return apperrors.NewValidationFailedError(fmt.Sprintf("category %q does not accept %s entries", cat.Name, entry.EntryType))
		}
		entry.CategoryName = &cat.Name
	}
	if entry.PartyID != nil {
		party, err := m.partyRepo.FindPartyByID(ctx, entry.BusinessID, *entry.PartyID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("party not found")
			}
			return fmt.Errorf("failed to load party: %w", err)
		}
		if !party.IsActive {
			return apperrors.NewValidationFailedError("party is inactive")
		}
		entry.PartyName = &party.Name
	}
	return nil
}

// lockParties row-locks the given parties in id order. Every writer of a party's
// entries takes this lock before writing, so balance recomputation sees all committed entries.
func (m *entryMutator) lockParties(ctx context.Context, businessID string, partyIDs ...*string) error {
	ids := make([]string, 0, len(partyIDs))
	for _, id := range partyIDs {
		if id != nil && *id != "" && !slices.Contains(ids, *id) {
			ids = append(ids, *id)
		}
	}
	slices.Sort(ids)
	for _, id := range ids {
		if _, err := m.partyRepo.LockPartyByID(ctx, businessID, id); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewValidationFailedError("party not found")
			}
			return fmt.Errorf("failed to lock party: %w", err)
		}
	}
	return nil
}

func (m *entryMutator) create(ctx context.Context, entry *domain.CashEntry) error {
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := m.lockParties(ctx, entry.BusinessID, entry.PartyID); err != nil {
		return err
	}
	if err := m.resolveRefs(ctx, entry); err != nil {
		return err
	}
	if err := m.entryRepo.SaveEntry(ctx, *entry); err != nil {
		return fmt.Errorf("failed to save entry: %w", err)
	}
	return m.recalculate(ctx, entry.BusinessID, entry.PartyID)
}

// update applies changes to entry and persists it. reason, when set, marks the entry as modified.
func (m *entryMutator) update(ctx context.Context, entry *domain.CashEntry, changes domain.CashEntryChanges, reason *string, userID string, at time.Time) error {
	previousParty := entry.PartyID
	entry.Apply(changes)
	if reason != nil {
		entry.IsModified = true
		entry.ModificationReason = reason
	}
	entry.LastUpdatedAt = at
	entry.LastUpdatedBy = userID

	if err := entry.Validate(); err != nil {
		return err
	}
	if err := m.lockParties(ctx, entry.BusinessID, previousParty, entry.PartyID); err != nil {
		return err
	}
	if err := m.resolveRefs(ctx, entry); err != nil {
		return err
	}
	if err := m.entryRepo.UpdateEntry(ctx, *entry); err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	if err := m.recalculate(ctx, entry.BusinessID, previousParty); err != nil {
		return err
	}
	if previousParty == nil || entry.PartyID == nil || *previousParty != *entry.PartyID {
		return m.recalculate(ctx, entry.BusinessID, entry.PartyID)
	}
	return nil
}

func (m *entryMutator) delete(ctx context.Context, entry *domain.CashEntry) error {
	if err := m.lockParties(ctx, entry.BusinessID, entry.PartyID); err != nil {
		return err
	}
	if err := m.entryRepo.DeleteEntry(ctx, entry.BusinessID, entry.EntryID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("entry not found")
		}
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	return m.recalculate(ctx, entry.BusinessID, entry.PartyID)
}

func (m *entryMutator) recalculate(ctx context.Context, businessID string, partyID *string) error {
	if partyID == nil || m.partyBalance == nil {
		return nil
	}
	return m.partyBalance.RecalculateBalance(ctx, businessID, *partyID)
}
