package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrZeroAmount        = errors.New("transaction amount must be non-zero")
	ErrBalanceMismatch   = errors.New("balance_after must equal balance_before plus amount")
	ErrNegativeBalance   = errors.New("transaction may not produce a negative balance")
	ErrUnknownType       = errors.New("unknown transaction type")
)

type TransactionType string

const (
	TypeManualAdd        TransactionType = "MANUAL_ADD"
	TypeManualDeduct     TransactionType = "MANUAL_DEDUCT"
	TypeRedemptionCredit TransactionType = "REDEMPTION_CREDIT"
	TypeBookingDebit     TransactionType = "BOOKING_DEBIT"
	TypeBonusCredit      TransactionType = "BONUS_CREDIT"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TypeManualAdd, TypeManualDeduct, TypeRedemptionCredit, TypeBookingDebit, TypeBonusCredit:
		return true
	}
	return false
}

// Transaction is one immutable row of the append-only audit trail.
// performedBy is nil for system-initiated mutations.
type Transaction struct {
	id             uuid.UUID
	memberID       uuid.UUID
	organizationID uuid.UUID
	amount         int64
	balanceBefore  int64
	balanceAfter   int64
	txType         TransactionType
	description    string
	performedBy    *uuid.UUID
	createdAt      time.Time
}

func NewTransaction(
	memberID, organizationID uuid.UUID,
	amount, balanceBefore, balanceAfter int64,
	txType TransactionType,
	description string,
	performedBy *uuid.UUID,
	createdAt time.Time,
) (*Transaction, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if !txType.Valid() {
		return nil, ErrUnknownType
	}
	if balanceAfter != balanceBefore+amount {
		return nil, ErrBalanceMismatch
	}
	if balanceAfter < 0 || balanceBefore < 0 {
		return nil, ErrNegativeBalance
	}

	return &Transaction{
		id:             uuid.New(),
		memberID:       memberID,
		organizationID: organizationID,
		amount:         amount,
		balanceBefore:  balanceBefore,
		balanceAfter:   balanceAfter,
		txType:         txType,
		description:    description,
		performedBy:    performedBy,
		createdAt:      createdAt,
	}, nil
}

func Reconstruct(
	id, memberID, organizationID uuid.UUID,
	amount, balanceBefore, balanceAfter int64,
	txType TransactionType,
	description string,
	performedBy *uuid.UUID,
	createdAt time.Time,
) *Transaction {
	return &Transaction{
		id:             id,
		memberID:       memberID,
		organizationID: organizationID,
		amount:         amount,
		balanceBefore:  balanceBefore,
		balanceAfter:   balanceAfter,
		txType:         txType,
		description:    description,
		performedBy:    performedBy,
		createdAt:      createdAt,
	}
}

func (t *Transaction) ID() uuid.UUID             { return t.id }
func (t *Transaction) MemberID() uuid.UUID       { return t.memberID }
func (t *Transaction) OrganizationID() uuid.UUID { return t.organizationID }
func (t *Transaction) Amount() int64             { return t.amount }
func (t *Transaction) BalanceBefore() int64      { return t.balanceBefore }
func (t *Transaction) BalanceAfter() int64       { return t.balanceAfter }
func (t *Transaction) Type() TransactionType     { return t.txType }
func (t *Transaction) Description() string       { return t.description }
func (t *Transaction) PerformedBy() *uuid.UUID   { return t.performedBy }
func (t *Transaction) CreatedAt() time.Time      { return t.createdAt }
