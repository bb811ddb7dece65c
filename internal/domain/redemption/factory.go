package redemption

import (
	"errors"
	"time"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/pkg/clock"

	"github.com/google/uuid"
)

const entitlementWindowDays = 30

var (
	ErrCouponOrgMismatch       = errors.New("coupon belongs to a different organization than the package")
	ErrOverridePackageMismatch = errors.New("package coupon must be redeemed against its override package")
)

type Factory struct {
	Clock clock.Clock
}

func NewFactory(clk clock.Clock) *Factory {
	return &Factory{Clock: clk}
}

// CreateRedemption validates the catalog entries and produces a PENDING
// redemption with all pricing and entitlement fields computed. No balance
// or entitlement side effects happen here; those are applied on approval.
//
// loc is the organization-local timezone used for calendar clamping of
// entitlement windows.
func (f *Factory) CreateRedemption(
	pkg *catalog.Package,
	coup *catalog.Coupon,
	memberID, redeemedBy uuid.UUID,
	notes string,
	loc *time.Location,
) (*Redemption, error) {
	if err := pkg.ValidateUsage(); err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	if coup != nil {
		if coup.OrganizationID() != pkg.OrganizationID() {
			return nil, ErrCouponOrgMismatch
		}
		if err := coup.ValidateUsage(now); err != nil {
			return nil, err
		}
		// A PACKAGE coupon is priced against the package it substitutes;
		// the caller must pass that package, not the requested one.
		if coup.Kind() == catalog.CouponPackage && coup.Override().PackageID != pkg.ID() {
			return nil, ErrOverridePackageMismatch
		}
	}

	quote := computeQuote(pkg, coup)

	var couponID *uuid.UUID
	if coup != nil {
		id := coup.ID()
		couponID = &id
	}

	r := &Redemption{
		id:                 uuid.New(),
		memberID:           memberID,
		organizationID:     pkg.OrganizationID(),
		packageID:          pkg.ID(),
		couponID:           couponID,
		redemptionType:     redemptionTypeFor(coup),
		status:             StatusPending,
		originalPriceCents: quote.originalPriceCents,
		discountCents:      quote.discountCents,
		finalPriceCents:    quote.finalPriceCents,
		creditsAdded:       quote.creditsAdded,
		grantsEliteStatus:  pkg.GrantsEliteStatus(),
		redeemedBy:         redeemedBy,
		redeemedAt:         now,
		notes:              notes,
	}

	if pkg.GrantsAllAccess() {
		days := int64(entitlementWindowDays)
		expiry := endOfDayAfter(now, entitlementWindowDays, loc)
		r.allAccessDays = &days
		r.allAccessExpiresAt = &expiry
	}

	if pkg.GrantsEliteStatus() && pkg.HasBenefit(catalog.BenefitFriendPass) {
		expiry := endOfDayAfter(now, entitlementWindowDays, loc)
		r.friendPassAvailable = true
		r.friendPassExpiresAt = &expiry
	}

	return r, nil
}

type quote struct {
	originalPriceCents int64
	discountCents      int64
	finalPriceCents    int64
	creditsAdded       *int64
}

func computeQuote(pkg *catalog.Package, coup *catalog.Coupon) quote {
	q := quote{originalPriceCents: pkg.PriceCents()}
	credits := pkg.Credits()

	if coup != nil {
		switch coup.Kind() {
		case catalog.CouponDiscount:
			q.discountCents = coup.Discount().AmountOff(q.originalPriceCents)
		case catalog.CouponPackage:
			// The custom price is what the member pays. Below the list
			// price the delta is recorded as discount; above it the
			// custom price stands in for the list price.
			if custom := coup.Override().CustomPrice; custom != nil {
				if *custom <= q.originalPriceCents {
					q.discountCents = q.originalPriceCents - *custom
				} else {
					q.originalPriceCents = *custom
				}
			}
			if coup.Override().CustomCredits != nil {
				credits = coup.Override().CustomCredits
			}
		case catalog.CouponCreditBonus:
			if credits != nil && coup.BonusCredits() != nil {
				total := *credits + *coup.BonusCredits()
				credits = &total
			}
		}
	}

	q.finalPriceCents = q.originalPriceCents - q.discountCents
	if q.finalPriceCents < 0 {
		q.finalPriceCents = 0
	}

	// ALL_ACCESS grants a window, never spendable credits.
	if pkg.GrantsAllAccess() {
		q.creditsAdded = nil
		return q
	}
	if credits != nil {
		v := *credits
		q.creditsAdded = &v
	}
	return q
}

func redemptionTypeFor(coup *catalog.Coupon) Type {
	if coup == nil {
		return TypePackageDirect
	}
	if coup.Kind() == catalog.CouponPackage {
		return TypeCouponPackage
	}
	return TypeCouponDiscount
}

// endOfDayAfter returns the last representable millisecond of the
// calendar day `days` ahead of now, in the given location.
func endOfDayAfter(now time.Time, days int, loc *time.Location) time.Time {
	local := now.In(loc).AddDate(0, 0, days)
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(999*time.Millisecond), loc)
}
