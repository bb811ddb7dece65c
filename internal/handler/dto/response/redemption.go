package response

import (
	"time"

	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

type RedemptionResponse struct {
	ID                  uuid.UUID  `json:"id"`
	MemberID            uuid.UUID  `json:"memberId"`
	PackageID           uuid.UUID  `json:"packageId"`
	PackageCode         string     `json:"packageCode,omitempty"`
	PackageName         string     `json:"packageName,omitempty"`
	CouponID            *uuid.UUID `json:"couponId,omitempty"`
	CouponCode          *string    `json:"couponCode,omitempty"`
	RedemptionType      string     `json:"redemptionType"`
	Status              string     `json:"status"`
	OriginalPriceCents  int64      `json:"originalPriceCents"`
	DiscountCents       int64      `json:"discountCents"`
	FinalPriceCents     int64      `json:"finalPriceCents"`
	CreditsAdded        *int64     `json:"creditsAdded,omitempty"`
	AllAccessDays       *int64     `json:"allAccessDays,omitempty"`
	AllAccessExpiresAt  *time.Time `json:"allAccessExpiresAt,omitempty"`
	FriendPassAvailable bool       `json:"friendPassAvailable"`
	FriendPassExpiresAt *time.Time `json:"friendPassExpiresAt,omitempty"`
	RedeemedBy          uuid.UUID  `json:"redeemedBy"`
	RedeemedAt          time.Time  `json:"redeemedAt"`
	Notes               *string    `json:"notes,omitempty"`
}

// FromRedemption builds a response from the write-side entity; catalog
// display fields are filled only by the read side.
func FromRedemption(r *redemption.Redemption) *RedemptionResponse {
	var notes *string
	if n := r.Notes(); n != "" {
		notes = &n
	}
	return &RedemptionResponse{
		ID:                  r.ID(),
		MemberID:            r.MemberID(),
		PackageID:           r.PackageID(),
		CouponID:            r.CouponID(),
		RedemptionType:      string(r.Type()),
		Status:              string(r.Status()),
		OriginalPriceCents:  r.OriginalPriceCents(),
		DiscountCents:       r.DiscountCents(),
		FinalPriceCents:     r.FinalPriceCents(),
		CreditsAdded:        r.CreditsAdded(),
		AllAccessDays:       r.AllAccessDays(),
		AllAccessExpiresAt:  r.AllAccessExpiresAt(),
		FriendPassAvailable: r.FriendPassAvailable(),
		FriendPassExpiresAt: r.FriendPassExpiresAt(),
		RedeemedBy:          r.RedeemedBy(),
		RedeemedAt:          r.RedeemedAt(),
		Notes:               notes,
	}
}

func FromRedemptionView(rm *queries.RedemptionView) *RedemptionResponse {
	return &RedemptionResponse{
		ID:                  rm.ID,
		MemberID:            rm.MemberID,
		PackageID:           rm.PackageID,
		PackageCode:         rm.PackageCode,
		PackageName:         rm.PackageName,
		CouponID:            rm.CouponID,
		CouponCode:          rm.CouponCode,
		RedemptionType:      rm.RedemptionType,
		Status:              rm.Status,
		OriginalPriceCents:  rm.OriginalPriceCents,
		DiscountCents:       rm.DiscountCents,
		FinalPriceCents:     rm.FinalPriceCents,
		CreditsAdded:        rm.CreditsAdded,
		AllAccessDays:       rm.AllAccessDays,
		AllAccessExpiresAt:  rm.AllAccessExpiresAt,
		FriendPassAvailable: rm.FriendPassAvailable,
		FriendPassExpiresAt: rm.FriendPassExpiresAt,
		RedeemedBy:          rm.RedeemedBy,
		RedeemedAt:          rm.RedeemedAt,
		Notes:               rm.Notes,
	}
}
