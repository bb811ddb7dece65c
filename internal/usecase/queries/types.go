package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type MemberView struct {
	ID                 uuid.UUID  `json:"id"`
	OrganizationID     uuid.UUID  `json:"organization_id"`
	MembershipType     string     `json:"membership_type"`
	Status             string     `json:"status"`
	CreditBalance      int64      `json:"credit_balance"`
	HasAllAccess       bool       `json:"has_all_access"`
	AllAccessExpiresAt *time.Time `json:"all_access_expires_at,omitempty"`
	IsEliteMember      bool       `json:"is_elite_member"`
	CreatedAt          time.Time  `json:"created_at"`
}

type TransactionView struct {
	ID            uuid.UUID  `json:"id"`
	MemberID      uuid.UUID  `json:"member_id"`
	Amount        int64      `json:"amount"`
	BalanceBefore int64      `json:"balance_before"`
	BalanceAfter  int64      `json:"balance_after"`
	Type          string     `json:"type"`
	Description   string     `json:"description"`
	PerformedBy   *uuid.UUID `json:"performed_by,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type RedemptionView struct {
	ID                  uuid.UUID  `json:"id"`
	MemberID            uuid.UUID  `json:"member_id"`
	PackageID           uuid.UUID  `json:"package_id"`
	PackageCode         string     `json:"package_code"`
	PackageName         string     `json:"package_name"`
	CouponID            *uuid.UUID `json:"coupon_id,omitempty"`
	CouponCode          *string    `json:"coupon_code,omitempty"`
	RedemptionType      string     `json:"redemption_type"`
	Status              string     `json:"status"`
	OriginalPriceCents  int64      `json:"original_price_cents"`
	DiscountCents       int64      `json:"discount_cents"`
	FinalPriceCents     int64      `json:"final_price_cents"`
	CreditsAdded        *int64     `json:"credits_added,omitempty"`
	AllAccessDays       *int64     `json:"all_access_days,omitempty"`
	AllAccessExpiresAt  *time.Time `json:"all_access_expires_at,omitempty"`
	FriendPassAvailable bool       `json:"friend_pass_available"`
	FriendPassExpiresAt *time.Time `json:"friend_pass_expires_at,omitempty"`
	RedeemedBy          uuid.UUID  `json:"redeemed_by"`
	RedeemedAt          time.Time  `json:"redeemed_at"`
	Notes               *string    `json:"notes,omitempty"`
}
