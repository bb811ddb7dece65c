package repository

import (
	"context"
	"strings"
	"time"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/infra/db"

	"github.com/google/uuid"
)

type CatalogRepository struct {
	db db.DBTX
}

func NewCatalogRepository(dbtx db.DBTX) *CatalogRepository {
	return &CatalogRepository{db: dbtx}
}

func (r *CatalogRepository) FindPackageByID(ctx context.Context, orgID, packageID uuid.UUID) (*catalog.Package, error) {
	const q = `
		SELECT id, organization_id, code, name, type, price_cents, credits, benefits, is_active
		FROM packages
		WHERE id = $1 AND organization_id = $2`

	var (
		id, org    uuid.UUID
		code, name string
		pkgType    string
		priceCents int64
		credits    *int64
		benefits   []string
		isActive   bool
	)
	err := r.db.QueryRow(ctx, q, packageID, orgID).Scan(
		&id, &org, &code, &name, &pkgType, &priceCents, &credits, &benefits, &isActive,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "package not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find package", err)
	}

	tags := make([]catalog.Benefit, 0, len(benefits))
	for _, b := range benefits {
		tags = append(tags, catalog.Benefit(b))
	}

	pkg, err := catalog.NewPackage(id, org, code, name, catalog.PackageType(pkgType), priceCents, credits, tags, isActive)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to reconstruct package", err)
	}
	return pkg, nil
}

// Lock acquires the coupon row for the rest of the transaction.
// Counting ACTIVE redemptions at ReadCommitted is only safe once
// approvals on the same coupon are serialized here.
func (r *CatalogRepository) Lock(ctx context.Context, couponID uuid.UUID) error {
	const q = `SELECT id FROM coupons WHERE id = $1 FOR UPDATE`

	var id uuid.UUID
	if err := r.db.QueryRow(ctx, q, couponID).Scan(&id); err != nil {
		if isNoRows(err) {
			return infra.WrapRepoErr(infra.KindNotFound, "coupon not found", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to lock coupon", err)
	}
	return nil
}

const couponColumns = `id, organization_id, code, coupon_type, discount_type, discount_value,
	       override_package_id, custom_price_cents, custom_credits, bonus_credits,
	       valid_from, valid_until, max_redemptions, max_redemptions_per_member, is_active`

func (r *CatalogRepository) FindCouponByID(ctx context.Context, orgID, couponID uuid.UUID) (*catalog.Coupon, error) {
	const q = `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE id = $1 AND organization_id = $2`

	return r.scanCoupon(ctx, q, couponID, orgID)
}

func (r *CatalogRepository) FindCouponByCode(ctx context.Context, orgID uuid.UUID, code string) (*catalog.Coupon, error) {
	const q = `
		SELECT ` + couponColumns + `
		FROM coupons
		WHERE organization_id = $1 AND code = $2`

	return r.scanCoupon(ctx, q, orgID, strings.ToUpper(strings.TrimSpace(code)))
}

func (r *CatalogRepository) scanCoupon(ctx context.Context, q string, args ...any) (*catalog.Coupon, error) {
	var (
		id, org                 uuid.UUID
		code                    string
		couponType              string
		discountType            *string
		discountValue           *int64
		overridePackageID       *uuid.UUID
		customPriceCents        *int64
		customCredits           *int64
		bonusCredits            *int64
		validFrom, validUntil   *time.Time
		maxRedemptions          *int64
		maxRedemptionsPerMember int64
		isActive                bool
	)

	err := r.db.QueryRow(ctx, q, args...).Scan(
		&id, &org, &code, &couponType, &discountType, &discountValue,
		&overridePackageID, &customPriceCents, &customCredits, &bonusCredits,
		&validFrom, &validUntil, &maxRedemptions, &maxRedemptionsPerMember, &isActive,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "coupon not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find coupon", err)
	}

	spec := catalog.CouponSpec{
		ID:                      id,
		OrganizationID:          org,
		Code:                    code,
		Kind:                    catalog.CouponKind(couponType),
		ValidFrom:               validFrom,
		ValidUntil:              validUntil,
		MaxRedemptions:          maxRedemptions,
		MaxRedemptionsPerMember: maxRedemptionsPerMember,
		IsActive:                isActive,
	}

	switch spec.Kind {
	case catalog.CouponDiscount:
		if discountType == nil || discountValue == nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "discount coupon missing discount payload", nil)
		}
		d, derr := catalog.NewDiscount(catalog.DiscountType(*discountType), *discountValue)
		if derr != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to reconstruct coupon discount", derr)
		}
		spec.Discount = &d
	case catalog.CouponPackage:
		if overridePackageID == nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "package coupon missing override payload", nil)
		}
		spec.Override = &catalog.PackageOverride{
			PackageID:     *overridePackageID,
			CustomPrice:   customPriceCents,
			CustomCredits: customCredits,
		}
	case catalog.CouponCreditBonus:
		spec.BonusCredits = bonusCredits
	}

	coup, err := catalog.NewCoupon(spec)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to reconstruct coupon", err)
	}
	return coup, nil
}
