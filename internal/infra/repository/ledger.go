package repository

import (
	"context"

	"studio-ledger/internal/domain/ledger"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/infra/db"
)

type LedgerRepository struct {
	db db.DBTX
}

func NewLedgerRepository(dbtx db.DBTX) *LedgerRepository {
	return &LedgerRepository{db: dbtx}
}

// Insert appends one immutable transaction row. The table carries a
// CHECK (balance_after = balance_before + amount) constraint mirroring
// the domain invariant.
func (r *LedgerRepository) Insert(ctx context.Context, tx *ledger.Transaction) error {
	const q = `
		INSERT INTO credit_transactions (
			id, member_id, organization_id, amount,
			balance_before, balance_after, type, description,
			performed_by, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`

	_, err := r.db.Exec(ctx, q,
		tx.ID(), tx.MemberID(), tx.OrganizationID(), tx.Amount(),
		tx.BalanceBefore(), tx.BalanceAfter(), string(tx.Type()), tx.Description(),
		tx.PerformedBy(), tx.CreatedAt(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, "transaction references missing member", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to insert credit transaction", err)
	}
	return nil
}
