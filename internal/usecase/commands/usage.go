package commands

import (
	"context"
	"time"

	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type RecordDailyUsageRequest struct {
	RedemptionID uuid.UUID
	BookingID    uuid.UUID
	UsageDate    time.Time
}

type UsageCommands interface {
	RecordDailyUsage(ctx context.Context, principal Principal, req RecordDailyUsageRequest) (*shared.DailyUsage, error)
}

type usageUseCaseImpl struct {
	uow    shared.UnitOfWork
	locale OrgLocale
}

func NewUsageCommands(uow shared.UnitOfWork, locale OrgLocale) UsageCommands {
	return &usageUseCaseImpl{uow: uow, locale: locale}
}

// RecordDailyUsage consumes one calendar day of an all-access
// entitlement. The pre-checks give precise errors; the unique constraint
// on (package_redemption_id, usage_date) is the authoritative guard
// against two bookings landing on the same day concurrently.
func (uc *usageUseCaseImpl) RecordDailyUsage(
	ctx context.Context,
	principal Principal,
	req RecordDailyUsageRequest,
) (*shared.DailyUsage, error) {
	var recorded *shared.DailyUsage
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Redemptions().FindByID(ctx, principal.OrganizationID, req.RedemptionID)
		if err != nil {
			return mapNotFound(err, errs.ErrRedemptionNotFound)
		}

		if r.Status() != redemption.StatusActive {
			return errs.ErrRedemptionNotActive
		}

		usageDate := truncateToDay(req.UsageDate, uc.locale.Location(principal.OrganizationID))
		if !r.EntitlementCoversDate(usageDate) {
			return errs.ErrEntitlementExpired
		}

		u := shared.DailyUsage{
			PackageRedemptionID: r.ID(),
			BookingID:           req.BookingID,
			UsageDate:           usageDate,
		}
		if err := tx.DailyUsage().Insert(ctx, u); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrDayAlreadyUsed
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		recorded = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recorded, nil
}

func truncateToDay(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}
