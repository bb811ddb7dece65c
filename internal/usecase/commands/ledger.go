package commands

import (
	"context"

	"studio-ledger/internal/domain/ledger"
	"studio-ledger/internal/domain/member"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/pkg/clock"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// AdjustBalanceRequest carries either a signed delta or an absolute
// target balance; exactly one must be set.
type AdjustBalanceRequest struct {
	Delta       *int64
	Absolute    *int64
	Description string
}

type AdjustBalanceResult struct {
	MemberID      uuid.UUID
	CreditBalance int64
	Applied       int64
}

type LedgerCommands interface {
	AdjustBalance(ctx context.Context, principal Principal, memberID uuid.UUID, req AdjustBalanceRequest) (*AdjustBalanceResult, error)
}

type ledgerUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewLedgerCommands(uow shared.UnitOfWork, clk clock.Clock) LedgerCommands {
	return &ledgerUseCaseImpl{uow: uow, clock: clk}
}

func (uc *ledgerUseCaseImpl) AdjustBalance(
	ctx context.Context,
	principal Principal,
	memberID uuid.UUID,
	req AdjustBalanceRequest,
) (*AdjustBalanceResult, error) {
	if req.Delta == nil && req.Absolute == nil {
		return nil, errs.ErrZeroAmountChange
	}

	var result *AdjustBalanceResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		m, err := tx.Members().FindByIDForUpdate(ctx, principal.OrganizationID, memberID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.ErrMemberNotFound
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		amount := int64(0)
		if req.Delta != nil {
			amount = *req.Delta
		} else {
			amount = *req.Absolute - m.CreditBalance()
		}

		// A zero-diff absolute set is a no-op, not an error: no
		// transaction row is written.
		if amount == 0 {
			result = &AdjustBalanceResult{MemberID: m.ID(), CreditBalance: m.CreditBalance()}
			return nil
		}

		txType := ledger.TypeManualAdd
		if amount < 0 {
			txType = ledger.TypeManualDeduct
		}

		actor := principal.ActorID
		change, err := applyBalanceChange(ctx, tx, uc.clock, m, amount, txType, req.Description, &actor)
		if err != nil {
			return err
		}

		result = &AdjustBalanceResult{
			MemberID:      m.ID(),
			CreditBalance: m.CreditBalance(),
			Applied:       change.Applied,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// applyBalanceChange is the single choke point for balance mutation: it
// updates the locked member row and appends the matching transaction in
// the same storage transaction. Deductions clamp at zero uniformly (the
// applied delta is what gets recorded, so replaying the ledger always
// reproduces the stored balance).
func applyBalanceChange(
	ctx context.Context,
	tx shared.Tx,
	clk clock.Clock,
	m *member.Member,
	amount int64,
	txType ledger.TransactionType,
	description string,
	performedBy *uuid.UUID,
) (member.BalanceChange, error) {
	change, err := m.ApplyBalanceChange(amount)
	if err != nil {
		return member.BalanceChange{}, err
	}

	// Fully clamped deduction: balance untouched, nothing to record.
	if change.Applied == 0 {
		return change, nil
	}

	entry, err := ledger.NewTransaction(
		m.ID(),
		m.OrganizationID(),
		change.Applied,
		change.Before,
		change.After,
		txType,
		description,
		performedBy,
		clk.Now(),
	)
	if err != nil {
		return member.BalanceChange{}, err
	}

	if err := tx.Ledger().Insert(ctx, entry); err != nil {
		return member.BalanceChange{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if err := tx.Members().Save(ctx, m); err != nil {
		return member.BalanceChange{}, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return change, nil
}
