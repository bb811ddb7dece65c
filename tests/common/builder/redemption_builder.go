//go:build unit

package builder

import (
	"time"

	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/usecase/queries"

	"github.com/google/uuid"
)

// RedemptionBuilder assembles redemption fixtures for handler tests.
// Defaults describe a pending direct credit-pack purchase.
type RedemptionBuilder struct {
	id           uuid.UUID
	memberID     uuid.UUID
	orgID        uuid.UUID
	packageID    uuid.UUID
	status       redemption.Status
	creditsAdded *int64
	redeemedBy   uuid.UUID
	redeemedAt   time.Time
}

func NewRedemptionBuilder() *RedemptionBuilder {
	credits := int64(10)
	return &RedemptionBuilder{
		id:           uuid.New(),
		memberID:     uuid.New(),
		orgID:        uuid.New(),
		packageID:    uuid.New(),
		status:       redemption.StatusPending,
		creditsAdded: &credits,
		redeemedBy:   uuid.New(),
		redeemedAt:   time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC),
	}
}

func (b *RedemptionBuilder) WithID(id uuid.UUID) *RedemptionBuilder {
	b.id = id
	return b
}

func (b *RedemptionBuilder) WithMemberID(id uuid.UUID) *RedemptionBuilder {
	b.memberID = id
	return b
}

func (b *RedemptionBuilder) WithStatus(status redemption.Status) *RedemptionBuilder {
	b.status = status
	return b
}

func (b *RedemptionBuilder) BuildEntity() *redemption.Redemption {
	return redemption.Reconstruct(
		b.id, b.memberID, b.orgID, b.packageID,
		nil,
		redemption.TypePackageDirect, b.status,
		5000, 0, 5000,
		b.creditsAdded, nil, nil,
		false, false, nil,
		b.redeemedBy, b.redeemedAt, "",
	)
}

func (b *RedemptionBuilder) BuildView() *queries.RedemptionView {
	return &queries.RedemptionView{
		ID:                 b.id,
		MemberID:           b.memberID,
		PackageID:          b.packageID,
		PackageCode:        "PACK_10",
		PackageName:        "10 Class Pack",
		RedemptionType:     string(redemption.TypePackageDirect),
		Status:             string(b.status),
		OriginalPriceCents: 5000,
		FinalPriceCents:    5000,
		CreditsAdded:       b.creditsAdded,
		RedeemedBy:         b.redeemedBy,
		RedeemedAt:         b.redeemedAt,
	}
}
