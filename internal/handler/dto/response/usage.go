package response

import (
	"time"

	"studio-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type DailyUsageResponse struct {
	PackageRedemptionID uuid.UUID `json:"packageRedemptionId"`
	BookingID           uuid.UUID `json:"bookingId"`
	UsageDate           time.Time `json:"usageDate"`
}

func FromDailyUsage(u *shared.DailyUsage) *DailyUsageResponse {
	return &DailyUsageResponse{
		PackageRedemptionID: u.PackageRedemptionID,
		BookingID:           u.BookingID,
		UsageDate:           u.UsageDate,
	}
}
