package queries

import (
	"context"

	"github.com/google/uuid"
)

type LedgerQueries interface {
	GetMember(ctx context.Context, orgID, memberID uuid.UUID) (*MemberView, error)
	// ListTransactions returns the member's full audit trail ordered by
	// creation time ascending, so folding from zero reproduces the
	// stored balance.
	ListTransactions(ctx context.Context, orgID, memberID uuid.UUID) ([]*TransactionView, error)
}

type LedgerViewRepo interface {
	FindMemberByID(ctx context.Context, orgID, memberID uuid.UUID) (*MemberView, error)
	FindTransactionsByMember(ctx context.Context, orgID, memberID uuid.UUID) ([]*TransactionView, error)
}

type ledgerQueriesImpl struct {
	repo LedgerViewRepo
}

func NewLedgerQueries(repo LedgerViewRepo) LedgerQueries {
	return &ledgerQueriesImpl{repo: repo}
}

func (q *ledgerQueriesImpl) GetMember(ctx context.Context, orgID, memberID uuid.UUID) (*MemberView, error) {
	return q.repo.FindMemberByID(ctx, orgID, memberID)
}

func (q *ledgerQueriesImpl) ListTransactions(ctx context.Context, orgID, memberID uuid.UUID) ([]*TransactionView, error) {
	return q.repo.FindTransactionsByMember(ctx, orgID, memberID)
}
