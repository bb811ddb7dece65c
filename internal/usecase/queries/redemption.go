package queries

import (
	"context"

	"github.com/google/uuid"
)

type RedemptionQueries interface {
	GetByID(ctx context.Context, orgID, id uuid.UUID) (*RedemptionView, error)
	ListByMember(ctx context.Context, orgID, memberID uuid.UUID) ([]*RedemptionView, error)
}

type RedemptionViewRepo interface {
	FindByID(ctx context.Context, orgID, id uuid.UUID) (*RedemptionView, error)
	FindByMemberID(ctx context.Context, orgID, memberID uuid.UUID) ([]*RedemptionView, error)
}

type redemptionQueriesImpl struct {
	repo RedemptionViewRepo
}

func NewRedemptionQueries(repo RedemptionViewRepo) RedemptionQueries {
	return &redemptionQueriesImpl{repo: repo}
}

func (q *redemptionQueriesImpl) GetByID(ctx context.Context, orgID, id uuid.UUID) (*RedemptionView, error) {
	return q.repo.FindByID(ctx, orgID, id)
}

func (q *redemptionQueriesImpl) ListByMember(ctx context.Context, orgID, memberID uuid.UUID) ([]*RedemptionView, error) {
	return q.repo.FindByMemberID(ctx, orgID, memberID)
}
