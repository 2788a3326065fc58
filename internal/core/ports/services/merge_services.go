package services

import (
	"context"

	"github.com/bizsuite/expense_ledger_app/internal/core/domain"
)

// MergeSvcFacade coordinates folding a sibling account's history into its
// parent. actorIsPrivileged is the opaque authorization boolean supplied by
// the caller's identity layer; this service trusts it.
type MergeSvcFacade interface {
	// MergeIntoParent reassigns the sibling's transactions to the parent,
	// transfers its balance and deletes the sibling, atomically. A non-zero
	// sibling balance requires actorIsPrivileged. Merge is not idempotent: a
	// second call for the same sibling fails with ErrNotFound.
	MergeIntoParent(ctx context.Context, siblingAccountID string, actorIsPrivileged bool, userID string) (*domain.MergeResult, error)
}
