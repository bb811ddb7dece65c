package member

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInactiveMember = errors.New("member is not active")
	ErrZeroAmount     = errors.New("balance change amount must be non-zero")
)

type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// Member holds the single mutable point of contention in the subsystem:
// the credit balance and the entitlement flags. Both are only ever
// mutated through BalanceChange / entitlement grants executed inside a
// storage transaction that locks the member row.
type Member struct {
	id                 uuid.UUID
	organizationID     uuid.UUID
	membershipType     string
	status             Status
	creditBalance      int64
	hasAllAccess       bool
	allAccessExpiresAt *time.Time
	isEliteMember      bool
}

func Reconstruct(
	id, organizationID uuid.UUID,
	membershipType string,
	status Status,
	creditBalance int64,
	hasAllAccess bool,
	allAccessExpiresAt *time.Time,
	isEliteMember bool,
) *Member {
	return &Member{
		id:                 id,
		organizationID:     organizationID,
		membershipType:     membershipType,
		status:             status,
		creditBalance:      creditBalance,
		hasAllAccess:       hasAllAccess,
		allAccessExpiresAt: allAccessExpiresAt,
		isEliteMember:      isEliteMember,
	}
}

// BalanceChange is the outcome of applying a signed amount to the balance.
// Deductions clamp at zero: the ledger never records a negative balance,
// and the recorded amount is the delta that was actually applied.
type BalanceChange struct {
	Before  int64
	After   int64
	Applied int64
}

func (m *Member) ApplyBalanceChange(amount int64) (BalanceChange, error) {
	if amount == 0 {
		return BalanceChange{}, ErrZeroAmount
	}

	before := m.creditBalance
	after := before + amount
	if after < 0 {
		after = 0
	}

	m.creditBalance = after
	return BalanceChange{
		Before:  before,
		After:   after,
		Applied: after - before,
	}, nil
}

// GrantAllAccess overwrites any existing window: a later approval moves
// the expiry wholesale, it never stacks.
func (m *Member) GrantAllAccess(expiresAt time.Time) {
	m.hasAllAccess = true
	expiry := expiresAt
	m.allAccessExpiresAt = &expiry
}

func (m *Member) RevokeAllAccess() {
	m.hasAllAccess = false
	m.allAccessExpiresAt = nil
}

func (m *Member) GrantEliteStatus() {
	m.isEliteMember = true
}

func (m *Member) HasActiveAllAccess(now time.Time) bool {
	return m.hasAllAccess && m.allAccessExpiresAt != nil && !now.After(*m.allAccessExpiresAt)
}

func (m *Member) IsActive() bool {
	return m.status == StatusActive
}

func (m *Member) ID() uuid.UUID                 { return m.id }
func (m *Member) OrganizationID() uuid.UUID     { return m.organizationID }
func (m *Member) MembershipType() string        { return m.membershipType }
func (m *Member) Status() Status                { return m.status }
func (m *Member) CreditBalance() int64          { return m.creditBalance }
func (m *Member) HasAllAccess() bool            { return m.hasAllAccess }
func (m *Member) AllAccessExpiresAt() *time.Time { return m.allAccessExpiresAt }
func (m *Member) IsEliteMember() bool           { return m.isEliteMember }
