package response

import (
	"time"

	"studio-ledger/internal/usecase/commands"
	"studio-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type MemberResponse struct {
	ID                 uuid.UUID  `json:"id"`
	MembershipType     string     `json:"membershipType"`
	Status             string     `json:"status"`
	CreditBalance      int64      `json:"creditBalance"`
	HasAllAccess       bool       `json:"hasAllAccess"`
	AllAccessExpiresAt *time.Time `json:"allAccessExpiresAt,omitempty"`
	IsEliteMember      bool       `json:"isEliteMember"`
	CreatedAt          time.Time  `json:"createdAt"`
}

type TransactionResponse struct {
	ID            uuid.UUID  `json:"id"`
	MemberID      uuid.UUID  `json:"memberId"`
	Amount        int64      `json:"amount"`
	BalanceBefore int64      `json:"balanceBefore"`
	BalanceAfter  int64      `json:"balanceAfter"`
	Type          string     `json:"type"`
	Description   string     `json:"description"`
	PerformedBy   *uuid.UUID `json:"performedBy,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type AdjustBalanceResponse struct {
	MemberID      uuid.UUID `json:"memberId"`
	CreditBalance int64     `json:"creditBalance"`
	Applied       int64     `json:"applied"`
}

func FromMemberView(rm *queries.MemberView) *MemberResponse {
	return &MemberResponse{
		ID:                 rm.ID,
		MembershipType:     rm.MembershipType,
		Status:             rm.Status,
		CreditBalance:      rm.CreditBalance,
		HasAllAccess:       rm.HasAllAccess,
		AllAccessExpiresAt: rm.AllAccessExpiresAt,
		IsEliteMember:      rm.IsEliteMember,
		CreatedAt:          rm.CreatedAt,
	}
}

func FromTransactionView(rm *queries.TransactionView) *TransactionResponse {
	return &TransactionResponse{
		ID:            rm.ID,
		MemberID:      rm.MemberID,
		Amount:        rm.Amount,
		BalanceBefore: rm.BalanceBefore,
		BalanceAfter:  rm.BalanceAfter,
		Type:          rm.Type,
		Description:   rm.Description,
		PerformedBy:   rm.PerformedBy,
		CreatedAt:     rm.CreatedAt,
	}
}

func FromAdjustBalanceResult(res *commands.AdjustBalanceResult) *AdjustBalanceResponse {
	return &AdjustBalanceResponse{
		MemberID:      res.MemberID,
		CreditBalance: res.CreditBalance,
		Applied:       res.Applied,
	}
}
