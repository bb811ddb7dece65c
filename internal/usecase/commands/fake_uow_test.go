//go:build unit

package commands_test

import (
	"context"
	"time"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/domain/ledger"
	"studio-ledger/internal/domain/member"
	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

// fakeUoW backs the command tests with in-memory state. Transactionality
// is not simulated; the tests assert on the sequence of repository
// effects, not on rollback behavior.
type fakeUoW struct {
	tx *fakeTx
}

func newFakeUoW() *fakeUoW {
	return &fakeUoW{tx: &fakeTx{
		members:     map[uuid.UUID]*member.Member{},
		packages:    map[uuid.UUID]*catalog.Package{},
		coupons:     map[uuid.UUID]*catalog.Coupon{},
		redemptions: map[uuid.UUID]*redemption.Redemption{},
		statuses:    map[uuid.UUID]redemption.Status{},
		usages:      map[string]shared.DailyUsage{},
	}}
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) Reads() shared.Reads {
	return u.tx
}

type fakeTx struct {
	members       map[uuid.UUID]*member.Member
	packages      map[uuid.UUID]*catalog.Package
	coupons       map[uuid.UUID]*catalog.Coupon
	redemptions   map[uuid.UUID]*redemption.Redemption
	statuses      map[uuid.UUID]redemption.Status
	usages        map[string]shared.DailyUsage
	entries       []*ledger.Transaction
	lockedCoupons []uuid.UUID
}

func (t *fakeTx) Members() shared.MemberRepository         { return t }
func (t *fakeTx) Ledger() shared.LedgerRepository          { return &fakeLedgerRepo{tx: t} }
func (t *fakeTx) Redemptions() shared.RedemptionRepository { return t }
func (t *fakeTx) Coupons() shared.CouponRepository         { return t }
func (t *fakeTx) DailyUsage() shared.DailyUsageRepository  { return &fakeUsageRepo{tx: t} }
func (t *fakeTx) Reads() shared.Reads                      { return t }

// Reads

func (t *fakeTx) MemberByID(_ context.Context, orgID, memberID uuid.UUID) (*member.Member, error) {
	m, ok := t.members[memberID]
	if !ok || m.OrganizationID() != orgID {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "member not found", nil)
	}
	return m, nil
}

func (t *fakeTx) PackageByID(_ context.Context, orgID, packageID uuid.UUID) (*catalog.Package, error) {
	p, ok := t.packages[packageID]
	if !ok || p.OrganizationID() != orgID {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "package not found", nil)
	}
	return p, nil
}

func (t *fakeTx) CouponByID(_ context.Context, orgID, couponID uuid.UUID) (*catalog.Coupon, error) {
	c, ok := t.coupons[couponID]
	if !ok || c.OrganizationID() != orgID {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "coupon not found", nil)
	}
	return c, nil
}

func (t *fakeTx) CouponByCode(_ context.Context, orgID uuid.UUID, code string) (*catalog.Coupon, error) {
	for _, c := range t.coupons {
		if c.OrganizationID() == orgID && c.Code().String() == code {
			return c, nil
		}
	}
	return nil, infra.WrapRepoErr(infra.KindNotFound, "coupon not found", nil)
}

// MemberRepository

func (t *fakeTx) FindByIDForUpdate(ctx context.Context, orgID, memberID uuid.UUID) (*member.Member, error) {
	return t.MemberByID(ctx, orgID, memberID)
}

func (t *fakeTx) Save(_ context.Context, m *member.Member) error {
	t.members[m.ID()] = m
	return nil
}

func (t *fakeTx) ClearLapsedAllAccess(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, m := range t.members {
		if m.HasAllAccess() && m.AllAccessExpiresAt() != nil && m.AllAccessExpiresAt().Before(now) {
			m.RevokeAllAccess()
			n++
		}
	}
	return n, nil
}

// LedgerRepository

type fakeLedgerRepo struct {
	tx *fakeTx
}

func (r *fakeLedgerRepo) Insert(_ context.Context, entry *ledger.Transaction) error {
	r.tx.entries = append(r.tx.entries, entry)
	return nil
}

// RedemptionRepository

func (t *fakeTx) Create(_ context.Context, r *redemption.Redemption) error {
	t.redemptions[r.ID()] = r
	t.statuses[r.ID()] = r.Status()
	return nil
}

func (t *fakeTx) FindByID(_ context.Context, orgID, id uuid.UUID) (*redemption.Redemption, error) {
	r, ok := t.redemptions[id]
	if !ok || r.OrganizationID() != orgID {
		return nil, infra.WrapRepoErr(infra.KindNotFound, "redemption not found", nil)
	}
	return redemption.Reconstruct(
		r.ID(), r.MemberID(), r.OrganizationID(), r.PackageID(),
		r.CouponID(), r.Type(), t.statuses[id],
		r.OriginalPriceCents(), r.DiscountCents(), r.FinalPriceCents(),
		r.CreditsAdded(), r.AllAccessDays(), r.AllAccessExpiresAt(),
		r.GrantsEliteStatus(), r.FriendPassAvailable(), r.FriendPassExpiresAt(),
		r.RedeemedBy(), r.RedeemedAt(), r.Notes(),
	), nil
}

func (t *fakeTx) TransitionStatus(_ context.Context, orgID, id uuid.UUID, from, to redemption.Status) (bool, error) {
	r, ok := t.redemptions[id]
	if !ok || r.OrganizationID() != orgID || t.statuses[id] != from {
		return false, nil
	}
	t.statuses[id] = to
	return true, nil
}

func (t *fakeTx) CountActiveByCoupon(_ context.Context, couponID uuid.UUID) (int64, error) {
	var n int64
	for id, r := range t.redemptions {
		if r.CouponID() != nil && *r.CouponID() == couponID && t.statuses[id] == redemption.StatusActive {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) CountActiveByCouponAndMember(_ context.Context, couponID, memberID uuid.UUID) (int64, error) {
	var n int64
	for id, r := range t.redemptions {
		if r.CouponID() != nil && *r.CouponID() == couponID &&
			r.MemberID() == memberID && t.statuses[id] == redemption.StatusActive {
			n++
		}
	}
	return n, nil
}

func (t *fakeTx) ExpireLapsedAllAccess(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for id, r := range t.redemptions {
		if t.statuses[id] == redemption.StatusActive &&
			r.AllAccessExpiresAt() != nil && r.AllAccessExpiresAt().Before(now) {
			t.statuses[id] = redemption.StatusExpired
			n++
		}
	}
	return n, nil
}

// CouponRepository

func (t *fakeTx) Lock(_ context.Context, couponID uuid.UUID) error {
	if _, ok := t.coupons[couponID]; !ok {
		return infra.WrapRepoErr(infra.KindNotFound, "coupon not found", nil)
	}
	t.lockedCoupons = append(t.lockedCoupons, couponID)
	return nil
}

// DailyUsageRepository

type fakeUsageRepo struct {
	tx *fakeTx
}

func usageKey(redemptionID uuid.UUID, date time.Time) string {
	return redemptionID.String() + "/" + date.Format("2006-01-02")
}

func (r *fakeUsageRepo) Insert(_ context.Context, u shared.DailyUsage) error {
	key := usageKey(u.PackageRedemptionID, u.UsageDate)
	if _, exists := r.tx.usages[key]; exists {
		return infra.WrapRepoErr(infra.KindDuplicateKey, "entitlement already used for this day", nil)
	}
	r.tx.usages[key] = u
	return nil
}
