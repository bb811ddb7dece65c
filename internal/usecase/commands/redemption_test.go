//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/domain/ledger"
	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/pkg/clock"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedemptionUC(uow *fakeUoW) commands.RedemptionCommands {
	clk := clock.NewMockClock(fixedNow)
	return commands.NewRedemptionCommands(
		uow,
		redemption.NewFactory(clk),
		commands.NewFixedLocale(time.UTC),
		clk,
	)
}

func seedCreditPack(t *testing.T, uow *fakeUoW, orgID uuid.UUID, priceCents, credits int64) *catalog.Package {
	t.Helper()
	pkg, err := catalog.NewPackage(
		uuid.New(), orgID, "PACK_10", "10 Class Pack",
		catalog.PackageCreditPack, priceCents, &credits, nil, true,
	)
	require.NoError(t, err)
	uow.tx.packages[pkg.ID()] = pkg
	return pkg
}

func seedAllAccessPackage(t *testing.T, uow *fakeUoW, orgID uuid.UUID) *catalog.Package {
	t.Helper()
	pkg, err := catalog.NewPackage(
		uuid.New(), orgID, "ALL_ACCESS", "Unlimited Month",
		catalog.PackageAllAccess, 20000, nil, nil, true,
	)
	require.NoError(t, err)
	uow.tx.packages[pkg.ID()] = pkg
	return pkg
}

func seedDiscountCoupon(t *testing.T, uow *fakeUoW, orgID uuid.UUID, mutate func(*catalog.CouponSpec)) *catalog.Coupon {
	t.Helper()
	d, err := catalog.NewPercentageDiscount(15)
	require.NoError(t, err)
	spec := catalog.CouponSpec{
		ID:                      uuid.New(),
		OrganizationID:          orgID,
		Code:                    "SAVE15",
		Kind:                    catalog.CouponDiscount,
		Discount:                &d,
		MaxRedemptionsPerMember: 1,
		IsActive:                true,
	}
	if mutate != nil {
		mutate(&spec)
	}
	coup, err := catalog.NewCoupon(spec)
	require.NoError(t, err)
	uow.tx.coupons[coup.ID()] = coup
	return coup
}

func createPending(t *testing.T, uow *fakeUoW, principal commands.Principal, req commands.CreateRedemptionRequest) *redemption.Redemption {
	t.Helper()
	r, err := newRedemptionUC(uow).Create(context.Background(), principal, req)
	require.NoError(t, err)
	return r
}

func TestCreateRedemption(t *testing.T) {
	orgID := uuid.New()
	ctx := context.Background()

	t.Run("direct purchase lands as pending with no side effects", func(t *testing.T) {
		uow := newFakeUoW()
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)

		r := createPending(t, uow, adminPrincipal(orgID), commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: pkg.ID(),
			Notes:     "front desk",
		})

		assert.Equal(t, redemption.StatusPending, r.Status())
		assert.Contains(t, uow.tx.redemptions, r.ID())
		assert.Empty(t, uow.tx.entries, "no ledger entry before approval")
		assert.Equal(t, int64(0), uow.tx.members[m.ID()].CreditBalance())
	})

	t.Run("coupon resolved by code", func(t *testing.T) {
		uow := newFakeUoW()
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		coup := seedDiscountCoupon(t, uow, orgID, nil)

		code := "SAVE15"
		r := createPending(t, uow, adminPrincipal(orgID), commands.CreateRedemptionRequest{
			MemberID:   m.ID(),
			PackageID:  pkg.ID(),
			CouponCode: &code,
		})

		require.NotNil(t, r.CouponID())
		assert.Equal(t, coup.ID(), *r.CouponID())
		assert.Equal(t, int64(750), r.DiscountCents())
	})

	t.Run("package coupon substitutes its override package", func(t *testing.T) {
		uow := newFakeUoW()
		m := seedMember(uow, orgID, 0)
		requested := seedCreditPack(t, uow, orgID, 5000, 10)
		override := seedAllAccessPackage(t, uow, orgID)

		customPrice := int64(9000)
		coup, err := catalog.NewCoupon(catalog.CouponSpec{
			ID:             uuid.New(),
			OrganizationID: orgID,
			Code:           "MONTH_DEAL",
			Kind:           catalog.CouponPackage,
			Override: &catalog.PackageOverride{
				PackageID:   override.ID(),
				CustomPrice: &customPrice,
			},
			MaxRedemptionsPerMember: 1,
			IsActive:                true,
		})
		require.NoError(t, err)
		uow.tx.coupons[coup.ID()] = coup

		couponID := coup.ID()
		r := createPending(t, uow, adminPrincipal(orgID), commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: requested.ID(),
			CouponID:  &couponID,
		})

		// the recorded package, price, and entitlements are the override's
		assert.Equal(t, override.ID(), r.PackageID())
		assert.Equal(t, redemption.TypeCouponPackage, r.Type())
		assert.Equal(t, int64(20000), r.OriginalPriceCents())
		assert.Equal(t, int64(9000), r.FinalPriceCents())
		assert.Nil(t, r.CreditsAdded())
		require.NotNil(t, r.AllAccessExpiresAt())
	})

	t.Run("unknown package", func(t *testing.T) {
		uow := newFakeUoW()
		m := seedMember(uow, orgID, 0)

		_, err := newRedemptionUC(uow).Create(ctx, adminPrincipal(orgID), commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: uuid.New(),
		})
		require.ErrorIs(t, err, errs.ErrPackageNotFound)
	})

	t.Run("unknown coupon code", func(t *testing.T) {
		uow := newFakeUoW()
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)

		code := "NOPE"
		_, err := newRedemptionUC(uow).Create(ctx, adminPrincipal(orgID), commands.CreateRedemptionRequest{
			MemberID:   m.ID(),
			PackageID:  pkg.ID(),
			CouponCode: &code,
		})
		require.ErrorIs(t, err, errs.ErrCouponNotFound)
	})

	t.Run("expired coupon", func(t *testing.T) {
		uow := newFakeUoW()
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		until := fixedNow.Add(-time.Hour)
		coup := seedDiscountCoupon(t, uow, orgID, func(s *catalog.CouponSpec) {
			s.ValidUntil = &until
		})

		couponID := coup.ID()
		_, err := newRedemptionUC(uow).Create(ctx, adminPrincipal(orgID), commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: pkg.ID(),
			CouponID:  &couponID,
		})
		require.ErrorIs(t, err, errs.ErrCouponExpired)
	})
}

func TestApproveRedemption(t *testing.T) {
	orgID := uuid.New()
	ctx := context.Background()

	t.Run("approval credits the member and appends the ledger entry", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 2)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		principal := adminPrincipal(orgID)

		pending := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: pkg.ID(),
		})

		approved, err := uc.Approve(ctx, principal, pending.ID())
		require.NoError(t, err)

		assert.Equal(t, redemption.StatusActive, approved.Status())
		assert.Equal(t, redemption.StatusActive, uow.tx.statuses[pending.ID()])
		assert.Equal(t, int64(12), uow.tx.members[m.ID()].CreditBalance())

		require.Len(t, uow.tx.entries, 1)
		entry := uow.tx.entries[0]
		assert.Equal(t, ledger.TypeRedemptionCredit, entry.Type())
		assert.Equal(t, int64(10), entry.Amount())
		assert.Equal(t, int64(2), entry.BalanceBefore())
		assert.Equal(t, int64(12), entry.BalanceAfter())
	})

	t.Run("all-access approval grants the window instead of credits", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedAllAccessPackage(t, uow, orgID)
		principal := adminPrincipal(orgID)

		pending := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: pkg.ID(),
		})

		_, err := uc.Approve(ctx, principal, pending.ID())
		require.NoError(t, err)

		updated := uow.tx.members[m.ID()]
		assert.True(t, updated.HasAllAccess())
		require.NotNil(t, updated.AllAccessExpiresAt())
		want := time.Date(2025, 1, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)
		assert.Equal(t, want, *updated.AllAccessExpiresAt())

		assert.Equal(t, int64(0), updated.CreditBalance())
		assert.Empty(t, uow.tx.entries)
	})

	t.Run("approving twice fails", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		principal := adminPrincipal(orgID)

		pending := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: pkg.ID(),
		})

		_, err := uc.Approve(ctx, principal, pending.ID())
		require.NoError(t, err)

		_, err = uc.Approve(ctx, principal, pending.ID())
		require.ErrorIs(t, err, errs.ErrInvalidState)

		// the second call applied nothing
		assert.Equal(t, int64(10), uow.tx.members[m.ID()].CreditBalance())
		assert.Len(t, uow.tx.entries, 1)
	})

	t.Run("approving a cancelled redemption fails", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		principal := adminPrincipal(orgID)

		pending := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID:  m.ID(),
			PackageID: pkg.ID(),
		})

		cancelled, err := uc.Cancel(ctx, principal, pending.ID())
		require.NoError(t, err)
		assert.Equal(t, redemption.StatusCancelled, cancelled.Status())

		_, err = uc.Approve(ctx, principal, pending.ID())
		require.ErrorIs(t, err, errs.ErrInvalidState)
		assert.Equal(t, int64(0), uow.tx.members[m.ID()].CreditBalance())
	})

	t.Run("unknown redemption", func(t *testing.T) {
		uow := newFakeUoW()
		_, err := newRedemptionUC(uow).Approve(ctx, adminPrincipal(orgID), uuid.New())
		require.ErrorIs(t, err, errs.ErrRedemptionNotFound)
	})
}

func TestApproveRedemptionCouponCaps(t *testing.T) {
	orgID := uuid.New()
	ctx := context.Background()

	t.Run("global cap binds at approval, not creation", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		first := seedMember(uow, orgID, 0)
		second := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		coup := seedDiscountCoupon(t, uow, orgID, func(s *catalog.CouponSpec) {
			s.MaxRedemptions = int64Ptr(1)
		})
		principal := adminPrincipal(orgID)
		couponID := coup.ID()

		// two pending requests against a cap of one: both may be created
		r1 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: first.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})
		r2 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: second.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})

		_, err := uc.Approve(ctx, principal, r1.ID())
		require.NoError(t, err)

		_, err = uc.Approve(ctx, principal, r2.ID())
		require.ErrorIs(t, err, errs.ErrRedemptionLimitReached)
		assert.Equal(t, redemption.StatusPending, uow.tx.statuses[r2.ID()])
		assert.Equal(t, int64(0), uow.tx.members[second.ID()].CreditBalance())
	})

	t.Run("re-approving an active redemption at the cap reports invalid state", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		coup := seedDiscountCoupon(t, uow, orgID, func(s *catalog.CouponSpec) {
			s.MaxRedemptions = int64Ptr(1)
		})
		principal := adminPrincipal(orgID)
		couponID := coup.ID()

		r1 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: m.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})

		_, err := uc.Approve(ctx, principal, r1.ID())
		require.NoError(t, err)

		// the exhausted cap must not mask the status precondition
		_, err = uc.Approve(ctx, principal, r1.ID())
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})

	t.Run("approval takes the coupon lock before counting", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		coup := seedDiscountCoupon(t, uow, orgID, func(s *catalog.CouponSpec) {
			s.MaxRedemptions = int64Ptr(1)
		})
		principal := adminPrincipal(orgID)
		couponID := coup.ID()

		r1 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: m.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})

		assert.Empty(t, uow.tx.lockedCoupons, "creation never locks the coupon")

		_, err := uc.Approve(ctx, principal, r1.ID())
		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{couponID}, uow.tx.lockedCoupons)
	})

	t.Run("per-member cap blocks a second approval for the same member", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		coup := seedDiscountCoupon(t, uow, orgID, nil) // MaxRedemptionsPerMember: 1
		principal := adminPrincipal(orgID)
		couponID := coup.ID()

		r1 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: m.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})
		r2 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: m.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})

		_, err := uc.Approve(ctx, principal, r1.ID())
		require.NoError(t, err)

		_, err = uc.Approve(ctx, principal, r2.ID())
		require.ErrorIs(t, err, errs.ErrPerMemberLimitReached)
	})

	t.Run("a cancelled redemption frees the cap", func(t *testing.T) {
		uow := newFakeUoW()
		uc := newRedemptionUC(uow)
		m := seedMember(uow, orgID, 0)
		pkg := seedCreditPack(t, uow, orgID, 5000, 10)
		coup := seedDiscountCoupon(t, uow, orgID, func(s *catalog.CouponSpec) {
			s.MaxRedemptions = int64Ptr(1)
		})
		principal := adminPrincipal(orgID)
		couponID := coup.ID()

		r1 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: m.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})
		r2 := createPending(t, uow, principal, commands.CreateRedemptionRequest{
			MemberID: m.ID(), PackageID: pkg.ID(), CouponID: &couponID,
		})

		_, err := uc.Cancel(ctx, principal, r1.ID())
		require.NoError(t, err)

		_, err = uc.Approve(ctx, principal, r2.ID())
		require.NoError(t, err)
	})
}

func TestExpireLapsed(t *testing.T) {
	orgID := uuid.New()
	ctx := context.Background()

	uow := newFakeUoW()
	uc := newRedemptionUC(uow)
	m := seedMember(uow, orgID, 0)
	pkg := seedAllAccessPackage(t, uow, orgID)
	principal := adminPrincipal(orgID)

	pending := createPending(t, uow, principal, commands.CreateRedemptionRequest{
		MemberID:  m.ID(),
		PackageID: pkg.ID(),
	})
	_, err := uc.Approve(ctx, principal, pending.ID())
	require.NoError(t, err)

	// still inside the window: nothing to sweep
	expired, err := uc.ExpireLapsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), expired)

	// move past the window and sweep again
	lapsed := fixedNow.AddDate(0, 0, 31)
	uc = commands.NewRedemptionCommands(
		uow,
		redemption.NewFactory(clock.NewMockClock(lapsed)),
		commands.NewFixedLocale(time.UTC),
		clock.NewMockClock(lapsed),
	)

	expired, err = uc.ExpireLapsed(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)
	assert.Equal(t, redemption.StatusExpired, uow.tx.statuses[pending.ID()])
	assert.False(t, uow.tx.members[m.ID()].HasAllAccess())
}
