package repository

import (
	"context"
	"time"

	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/infra/db"

	"github.com/google/uuid"
)

type RedemptionRepository struct {
	db db.DBTX
}

func NewRedemptionRepository(dbtx db.DBTX) *RedemptionRepository {
	return &RedemptionRepository{db: dbtx}
}

func (r *RedemptionRepository) Create(ctx context.Context, red *redemption.Redemption) error {
	const q = `
		INSERT INTO package_redemptions (
			id, member_id, organization_id, package_id, coupon_id,
			redemption_type, status,
			original_price_cents, discount_cents, final_price_cents,
			credits_added, all_access_days, all_access_expires_at,
			grants_elite_status, friend_pass_available, friend_pass_expires_at,
			redeemed_by, redeemed_at, notes
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)`

	_, err := r.db.Exec(ctx, q,
		red.ID(), red.MemberID(), red.OrganizationID(), red.PackageID(), red.CouponID(),
		string(red.Type()), string(red.Status()),
		red.OriginalPriceCents(), red.DiscountCents(), red.FinalPriceCents(),
		red.CreditsAdded(), red.AllAccessDays(), red.AllAccessExpiresAt(),
		red.GrantsEliteStatus(), red.FriendPassAvailable(), red.FriendPassExpiresAt(),
		red.RedeemedBy(), red.RedeemedAt(), red.Notes(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return infra.WrapRepoErr(infra.KindForeignKeyViolated, "redemption references missing row", err)
		}
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to create redemption", err)
	}
	return nil
}

const redemptionColumns = `id, member_id, organization_id, package_id, coupon_id,
	       redemption_type, status,
	       original_price_cents, discount_cents, final_price_cents,
	       credits_added, all_access_days, all_access_expires_at,
	       grants_elite_status, friend_pass_available, friend_pass_expires_at,
	       redeemed_by, redeemed_at, notes`

func (r *RedemptionRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*redemption.Redemption, error) {
	const q = `
		SELECT ` + redemptionColumns + `
		FROM package_redemptions
		WHERE id = $1 AND organization_id = $2`

	var (
		rid, memberID, org, packageID uuid.UUID
		couponID                      *uuid.UUID
		redemptionType, status        string
		originalPrice, discount       int64
		finalPrice                    int64
		creditsAdded, allAccessDays   *int64
		allAccessExpiresAt            *time.Time
		grantsEliteStatus             bool
		friendPassAvailable           bool
		friendPassExpiresAt           *time.Time
		redeemedBy                    uuid.UUID
		redeemedAt                    time.Time
		notes                         string
	)

	err := r.db.QueryRow(ctx, q, id, orgID).Scan(
		&rid, &memberID, &org, &packageID, &couponID,
		&redemptionType, &status,
		&originalPrice, &discount, &finalPrice,
		&creditsAdded, &allAccessDays, &allAccessExpiresAt,
		&grantsEliteStatus, &friendPassAvailable, &friendPassExpiresAt,
		&redeemedBy, &redeemedAt, &notes,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "redemption not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find redemption", err)
	}

	return redemption.Reconstruct(
		rid, memberID, org, packageID, couponID,
		redemption.Type(redemptionType), redemption.Status(status),
		originalPrice, discount, finalPrice,
		creditsAdded, allAccessDays, allAccessExpiresAt,
		grantsEliteStatus, friendPassAvailable, friendPassExpiresAt,
		redeemedBy, redeemedAt, notes,
	), nil
}

// TransitionStatus is the conditional update backing the state machine:
// of two concurrent approvals, exactly one sees RowsAffected() == 1.
func (r *RedemptionRepository) TransitionStatus(
	ctx context.Context,
	orgID, id uuid.UUID,
	from, to redemption.Status,
) (bool, error) {
	const q = `
		UPDATE package_redemptions
		SET status = $4, updated_at = NOW()
		WHERE id = $1 AND organization_id = $2 AND status = $3`

	tag, err := r.db.Exec(ctx, q, id, orgID, string(from), string(to))
	if err != nil {
		return false, infra.WrapRepoErr(infra.KindDBFailure, "failed to transition redemption status", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RedemptionRepository) CountActiveByCoupon(ctx context.Context, couponID uuid.UUID) (int64, error) {
	const q = `
		SELECT COUNT(*) FROM package_redemptions
		WHERE coupon_id = $1 AND status = 'ACTIVE'`

	var count int64
	if err := r.db.QueryRow(ctx, q, couponID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count coupon redemptions", err)
	}
	return count, nil
}

func (r *RedemptionRepository) CountActiveByCouponAndMember(ctx context.Context, couponID, memberID uuid.UUID) (int64, error) {
	const q = `
		SELECT COUNT(*) FROM package_redemptions
		WHERE coupon_id = $1 AND member_id = $2 AND status = 'ACTIVE'`

	var count int64
	if err := r.db.QueryRow(ctx, q, couponID, memberID).Scan(&count); err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to count member coupon redemptions", err)
	}
	return count, nil
}

func (r *RedemptionRepository) ExpireLapsedAllAccess(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE package_redemptions
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE status = 'ACTIVE'
		  AND all_access_expires_at IS NOT NULL
		  AND all_access_expires_at < $1`

	tag, err := r.db.Exec(ctx, q, now)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to expire lapsed redemptions", err)
	}
	return tag.RowsAffected(), nil
}
