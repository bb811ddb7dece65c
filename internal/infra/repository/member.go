package repository

import (
	"context"
	"time"

	"studio-ledger/internal/domain/member"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/infra/db"

	"github.com/google/uuid"
)

type MemberRepository struct {
	db db.DBTX
}

func NewMemberRepository(dbtx db.DBTX) *MemberRepository {
	return &MemberRepository{db: dbtx}
}

const memberColumns = `id, organization_id, membership_type, status, credit_balance,
	       has_all_access, all_access_expires_at, is_elite_member`

// FindByIDForUpdate takes a row lock on the member; it must run inside a
// transaction. Concurrent balance mutations on the same member serialize
// here.
func (r *MemberRepository) FindByIDForUpdate(ctx context.Context, orgID, memberID uuid.UUID) (*member.Member, error) {
	const q = `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1 AND organization_id = $2
		FOR UPDATE`

	return r.scanMember(ctx, q, memberID, orgID)
}

func (r *MemberRepository) FindByID(ctx context.Context, orgID, memberID uuid.UUID) (*member.Member, error) {
	const q = `
		SELECT ` + memberColumns + `
		FROM members
		WHERE id = $1 AND organization_id = $2`

	return r.scanMember(ctx, q, memberID, orgID)
}

func (r *MemberRepository) Save(ctx context.Context, m *member.Member) error {
	const q = `
		UPDATE members
		SET credit_balance = $3,
		    has_all_access = $4,
		    all_access_expires_at = $5,
		    is_elite_member = $6,
		    updated_at = NOW()
		WHERE id = $1 AND organization_id = $2`

	tag, err := r.db.Exec(ctx, q,
		m.ID(), m.OrganizationID(),
		m.CreditBalance(), m.HasAllAccess(), m.AllAccessExpiresAt(), m.IsEliteMember(),
	)
	if err != nil {
		return infra.WrapRepoErr(infra.KindDBFailure, "failed to save member", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr(infra.KindNotFound, "member not found", nil)
	}
	return nil
}

func (r *MemberRepository) ClearLapsedAllAccess(ctx context.Context, now time.Time) (int64, error) {
	const q = `
		UPDATE members
		SET has_all_access = FALSE,
		    all_access_expires_at = NULL,
		    updated_at = NOW()
		WHERE has_all_access = TRUE AND all_access_expires_at < $1`

	tag, err := r.db.Exec(ctx, q, now)
	if err != nil {
		return 0, infra.WrapRepoErr(infra.KindDBFailure, "failed to clear lapsed all-access flags", err)
	}
	return tag.RowsAffected(), nil
}

func (r *MemberRepository) scanMember(ctx context.Context, q string, args ...any) (*member.Member, error) {
	var (
		id, orgID          uuid.UUID
		membershipType     string
		status             string
		creditBalance      int64
		hasAllAccess       bool
		allAccessExpiresAt *time.Time
		isEliteMember      bool
	)

	err := r.db.QueryRow(ctx, q, args...).Scan(
		&id, &orgID, &membershipType, &status, &creditBalance,
		&hasAllAccess, &allAccessExpiresAt, &isEliteMember,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, infra.WrapRepoErr(infra.KindNotFound, "member not found", err)
		}
		return nil, infra.WrapRepoErr(infra.KindDBFailure, "failed to find member", err)
	}

	return member.Reconstruct(
		id, orgID, membershipType, member.Status(status),
		creditBalance, hasAllAccess, allAccessExpiresAt, isEliteMember,
	), nil
}
