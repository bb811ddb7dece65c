package shared

import (
	"context"
	"time"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/domain/ledger"
	"studio-ledger/internal/domain/member"
	"studio-ledger/internal/domain/redemption"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: full transaction for write operations with retry on
	// serialization failures and deadlocks. The whole function is
	// replayed, never a partial write.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// Reads: catalog and member lookups outside a write transaction.
	Reads() Reads
}

type Tx interface {
	Members() MemberRepository
	Ledger() LedgerRepository
	Redemptions() RedemptionRepository
	Coupons() CouponRepository
	DailyUsage() DailyUsageRepository
	Reads() Reads
}

type Reads interface {
	MemberByID(ctx context.Context, orgID, memberID uuid.UUID) (*member.Member, error)
	PackageByID(ctx context.Context, orgID, packageID uuid.UUID) (*catalog.Package, error)
	CouponByID(ctx context.Context, orgID, couponID uuid.UUID) (*catalog.Coupon, error)
	CouponByCode(ctx context.Context, orgID uuid.UUID, code string) (*catalog.Coupon, error)
}

type MemberRepository interface {
	// FindByIDForUpdate locks the member row for the duration of the
	// enclosing transaction; every balance or entitlement mutation must
	// read through it.
	FindByIDForUpdate(ctx context.Context, orgID, memberID uuid.UUID) (*member.Member, error)
	Save(ctx context.Context, m *member.Member) error
	// ClearLapsedAllAccess drops the all-access flag for members whose
	// window ended before now. Used by the expiry sweep.
	ClearLapsedAllAccess(ctx context.Context, now time.Time) (int64, error)
}

type LedgerRepository interface {
	Insert(ctx context.Context, tx *ledger.Transaction) error
}

type RedemptionRepository interface {
	Create(ctx context.Context, r *redemption.Redemption) error
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*redemption.Redemption, error)
	// TransitionStatus performs a conditional update (WHERE status = from)
	// and reports whether exactly one row changed. Two concurrent
	// approvals of the same redemption see one true and one false.
	TransitionStatus(ctx context.Context, orgID, id uuid.UUID, from, to redemption.Status) (bool, error)
	CountActiveByCoupon(ctx context.Context, couponID uuid.UUID) (int64, error)
	CountActiveByCouponAndMember(ctx context.Context, couponID, memberID uuid.UUID) (int64, error)
	// ExpireLapsedAllAccess marks ACTIVE all-access redemptions whose
	// window ended before now as EXPIRED.
	ExpireLapsedAllAccess(ctx context.Context, now time.Time) (int64, error)
}

type CouponRepository interface {
	// Lock takes the coupon row lock for the rest of the transaction.
	// Concurrent approvals sharing a coupon serialize here, so the cap
	// count that follows sees every committed status flip.
	Lock(ctx context.Context, couponID uuid.UUID) error
}

type DailyUsageRepository interface {
	// Insert relies on the (package_redemption_id, usage_date) unique
	// constraint; a duplicate surfaces as KindDuplicateKey.
	Insert(ctx context.Context, u DailyUsage) error
}

// DailyUsage is one consumed calendar day of an all-access entitlement.
type DailyUsage struct {
	PackageRedemptionID uuid.UUID
	BookingID           uuid.UUID
	UsageDate           time.Time
}
