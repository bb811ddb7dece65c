package request

import (
	"time"

	"github.com/google/uuid"
)

type RecordDailyUsageRequest struct {
	BookingID uuid.UUID `json:"booking_id" binding:"required"`
	UsageDate time.Time `json:"usage_date" binding:"required"`
}
