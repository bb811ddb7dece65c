package repository

import (
	"context"

	"studio-ledger/internal/infra"
	"studio-ledger/internal/infra/db"
	"studio-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

// Read-side repositories working directly on the pool; queries never
// join a write transaction.

type LedgerViewRepository struct {
	db db.DBTX
}

func NewLedgerViewRepository(dbtx db.DBTX) *LedgerViewRepository {
	return &LedgerViewRepository{db: dbtx}
}

func (r *LedgerViewRepository) FindMemberByID(ctx context.Context, orgID, memberID uuid.UUID) (*queries.MemberView, error) {
	const q = `
		SELECT id, organization_id, membership_type, status, credit_balance,
		       has_all_access, all_access_expires_at, is_elite_member, created_at
		FROM members
		WHERE id = $1 AND organization_id = $2`

	var v queries.MemberView
	err := r.db.QueryRow(ctx, q, memberID, orgID).Scan(
		&v.ID, &v.OrganizationID, &v.MembershipType, &v.Status, &v.CreditBalance,
		&v.HasAllAccess, &v.AllAccessExpiresAt, &v.IsEliteMember, &v.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "member not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find member view", err)
	}
	return &v, nil
}

func (r *LedgerViewRepository) FindTransactionsByMember(ctx context.Context, orgID, memberID uuid.UUID) ([]*queries.TransactionView, error) {
	const q = `
		SELECT id, member_id, amount, balance_before, balance_after,
		       type, description, performed_by, created_at
		FROM credit_transactions
		WHERE member_id = $1 AND organization_id = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(ctx, q, memberID, orgID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list credit transactions", err)
	}
	defer rows.Close()

	var out []*queries.TransactionView
	for rows.Next() {
		var v queries.TransactionView
		if err := rows.Scan(
			&v.ID, &v.MemberID, &v.Amount, &v.BalanceBefore, &v.BalanceAfter,
			&v.Type, &v.Description, &v.PerformedBy, &v.CreatedAt,
		); err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan credit transaction", err)
		}
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read credit transactions", err)
	}
	return out, nil
}

type RedemptionViewRepository struct {
	db db.DBTX
}

func NewRedemptionViewRepository(dbtx db.DBTX) *RedemptionViewRepository {
	return &RedemptionViewRepository{db: dbtx}
}

const redemptionViewQuery = `
	SELECT r.id, r.member_id, r.package_id, p.code, p.name,
	       r.coupon_id, c.code,
	       r.redemption_type, r.status,
	       r.original_price_cents, r.discount_cents, r.final_price_cents,
	       r.credits_added, r.all_access_days, r.all_access_expires_at,
	       r.friend_pass_available, r.friend_pass_expires_at,
	       r.redeemed_by, r.redeemed_at, NULLIF(r.notes, '')
	FROM package_redemptions r
	JOIN packages p ON p.id = r.package_id
	LEFT JOIN coupons c ON c.id = r.coupon_id`

func (r *RedemptionViewRepository) FindByID(ctx context.Context, orgID, id uuid.UUID) (*queries.RedemptionView, error) {
	q := redemptionViewQuery + `
	WHERE r.id = $1 AND r.organization_id = $2`

	v, err := r.scanOne(r.db.QueryRow(ctx, q, id, orgID))
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "redemption not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find redemption view", err)
	}
	return v, nil
}

func (r *RedemptionViewRepository) FindByMemberID(ctx context.Context, orgID, memberID uuid.UUID) ([]*queries.RedemptionView, error) {
	q := redemptionViewQuery + `
	WHERE r.member_id = $1 AND r.organization_id = $2
	ORDER BY r.redeemed_at DESC`

	rows, err := r.db.Query(ctx, q, memberID, orgID)
	if err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to list redemptions", err)
	}
	defer rows.Close()

	var out []*queries.RedemptionView
	for rows.Next() {
		v, err := r.scanOne(rows)
		if err != nil {
			return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to scan redemption view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to read redemptions", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *RedemptionViewRepository) scanOne(row rowScanner) (*queries.RedemptionView, error) {
	var v queries.RedemptionView
	err := row.Scan(
		&v.ID, &v.MemberID, &v.PackageID, &v.PackageCode, &v.PackageName,
		&v.CouponID, &v.CouponCode,
		&v.RedemptionType, &v.Status,
		&v.OriginalPriceCents, &v.DiscountCents, &v.FinalPriceCents,
		&v.CreditsAdded, &v.AllAccessDays, &v.AllAccessExpiresAt,
		&v.FriendPassAvailable, &v.FriendPassExpiresAt,
		&v.RedeemedBy, &v.RedeemedAt, &v.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
