package redemption

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotPending     = errors.New("redemption is not pending")
	ErrNotActive      = errors.New("redemption is not active")
	ErrInvalidPricing = errors.New("redemption pricing is inconsistent")
)

// Redemption snapshots everything needed to apply a package at approval
// time, so later catalog edits cannot change what the member was sold.
type Redemption struct {
	id             uuid.UUID
	memberID       uuid.UUID
	organizationID uuid.UUID
	packageID      uuid.UUID
	couponID       *uuid.UUID
	redemptionType Type
	status         Status

	originalPriceCents int64
	discountCents      int64
	finalPriceCents    int64

	creditsAdded         *int64
	allAccessDays        *int64
	allAccessExpiresAt   *time.Time
	grantsEliteStatus    bool
	friendPassAvailable  bool
	friendPassExpiresAt  *time.Time

	redeemedBy uuid.UUID
	redeemedAt time.Time
	notes      string
}

func Reconstruct(
	id, memberID, organizationID, packageID uuid.UUID,
	couponID *uuid.UUID,
	redemptionType Type,
	status Status,
	originalPriceCents, discountCents, finalPriceCents int64,
	creditsAdded, allAccessDays *int64,
	allAccessExpiresAt *time.Time,
	grantsEliteStatus, friendPassAvailable bool,
	friendPassExpiresAt *time.Time,
	redeemedBy uuid.UUID,
	redeemedAt time.Time,
	notes string,
) *Redemption {
	return &Redemption{
		id:                  id,
		memberID:            memberID,
		organizationID:      organizationID,
		packageID:           packageID,
		couponID:            couponID,
		redemptionType:      redemptionType,
		status:              status,
		originalPriceCents:  originalPriceCents,
		discountCents:       discountCents,
		finalPriceCents:     finalPriceCents,
		creditsAdded:        creditsAdded,
		allAccessDays:       allAccessDays,
		allAccessExpiresAt:  allAccessExpiresAt,
		grantsEliteStatus:   grantsEliteStatus,
		friendPassAvailable: friendPassAvailable,
		friendPassExpiresAt: friendPassExpiresAt,
		redeemedBy:          redeemedBy,
		redeemedAt:          redeemedAt,
		notes:               notes,
	}
}

// Approve moves PENDING to ACTIVE. The storage layer enforces the same
// precondition with a conditional update; this guards in-memory flows.
func (r *Redemption) Approve() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusActive
	return nil
}

// Cancel moves PENDING to CANCELLED. ACTIVE redemptions are not
// reversible this way; reversing applied credit requires an explicit
// compensating ledger entry.
func (r *Redemption) Cancel() error {
	if r.status != StatusPending {
		return ErrNotPending
	}
	r.status = StatusCancelled
	return nil
}

// Expire moves ACTIVE to EXPIRED once the all-access window has lapsed.
func (r *Redemption) Expire(now time.Time) error {
	if r.status != StatusActive {
		return ErrNotActive
	}
	if r.allAccessExpiresAt == nil || !now.After(*r.allAccessExpiresAt) {
		return ErrNotActive
	}
	r.status = StatusExpired
	return nil
}

// CreditsToApply is the signed amount the ledger receives on approval.
func (r *Redemption) CreditsToApply() int64 {
	if r.creditsAdded == nil {
		return 0
	}
	return *r.creditsAdded
}

// EntitlementCoversDate reports whether an ACTIVE all-access redemption
// still covers the given usage date.
func (r *Redemption) EntitlementCoversDate(usageDate time.Time) bool {
	if r.status != StatusActive || r.allAccessExpiresAt == nil {
		return false
	}
	return !usageDate.After(*r.allAccessExpiresAt)
}

func (r *Redemption) ID() uuid.UUID                  { return r.id }
func (r *Redemption) MemberID() uuid.UUID            { return r.memberID }
func (r *Redemption) OrganizationID() uuid.UUID      { return r.organizationID }
func (r *Redemption) PackageID() uuid.UUID           { return r.packageID }
func (r *Redemption) CouponID() *uuid.UUID           { return r.couponID }
func (r *Redemption) Type() Type                     { return r.redemptionType }
func (r *Redemption) Status() Status                 { return r.status }
func (r *Redemption) OriginalPriceCents() int64      { return r.originalPriceCents }
func (r *Redemption) DiscountCents() int64           { return r.discountCents }
func (r *Redemption) FinalPriceCents() int64         { return r.finalPriceCents }
func (r *Redemption) CreditsAdded() *int64           { return r.creditsAdded }
func (r *Redemption) AllAccessDays() *int64          { return r.allAccessDays }
func (r *Redemption) AllAccessExpiresAt() *time.Time { return r.allAccessExpiresAt }
func (r *Redemption) GrantsEliteStatus() bool        { return r.grantsEliteStatus }
func (r *Redemption) FriendPassAvailable() bool      { return r.friendPassAvailable }
func (r *Redemption) FriendPassExpiresAt() *time.Time {
	return r.friendPassExpiresAt
}
func (r *Redemption) RedeemedBy() uuid.UUID { return r.redeemedBy }
func (r *Redemption) RedeemedAt() time.Time { return r.redeemedAt }
func (r *Redemption) Notes() string         { return r.notes }
