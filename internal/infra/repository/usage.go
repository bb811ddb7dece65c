package repository

import (
	"context"

	"studio-ledger/internal/infra"
	"studio-ledger/internal/infra/db"
	"studio-ledger/internal/usecase/shared"
)

type DailyUsageRepository struct {
	db db.DBTX
}

func NewDailyUsageRepository(dbtx db.DBTX) *DailyUsageRepository {
	return &DailyUsageRepository{db: dbtx}
}

// Insert lets the unique constraint on (package_redemption_id,
// usage_date) arbitrate concurrent bookings for the same day; the
// application pre-check alone is not sufficient.
func (r *DailyUsageRepository) Insert(ctx context.Context, u shared.DailyUsage) error {
	const q = `
		INSERT INTO all_access_daily_usage (package_redemption_id, usage_date, booking_id)
		VALUES ($1, $2, $3)`

	_, err := r.db.Exec(ctx, q, u.PackageRedemptionID, u.UsageDate, u.BookingID)
	if err != nil {
		if isUniqueViolation(err) {
			return infra.WrapRepoErr(infra.KindDuplicateKey, "entitlement already used for this day", err)
		}
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, "usage references missing redemption", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to record daily usage", err)
	}
	return nil
}
