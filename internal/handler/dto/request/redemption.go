package request

import (
	"strings"

	"github.com/google/uuid"
)

type CreateRedemptionRequest struct {
	MemberID   uuid.UUID  `json:"member_id" binding:"required"`
	PackageID  uuid.UUID  `json:"package_id" binding:"required"`
	CouponID   *uuid.UUID `json:"coupon_id,omitempty"`
	CouponCode *string    `json:"coupon_code,omitempty"`
	Notes      *string    `json:"notes,omitempty"`
}

func (r CreateRedemptionRequest) GetCouponCode() *string {
	if r.CouponCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.CouponCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateRedemptionRequest) GetNotes() string {
	if r.Notes == nil {
		return ""
	}
	return strings.TrimSpace(*r.Notes)
}
