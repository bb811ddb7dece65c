package commands

import (
	"context"
	"errors"

	"studio-ledger/internal/domain/catalog"
	"studio-ledger/internal/domain/ledger"
	"studio-ledger/internal/domain/redemption"
	"studio-ledger/internal/infra"
	"studio-ledger/internal/pkg/clock"
	"studio-ledger/internal/pkg/errs"
	"studio-ledger/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRedemptionRequest struct {
	MemberID   uuid.UUID
	PackageID  uuid.UUID
	CouponID   *uuid.UUID
	CouponCode *string
	Notes      string
}

type RedemptionCommands interface {
	Create(ctx context.Context, principal Principal, req CreateRedemptionRequest) (*redemption.Redemption, error)
	Approve(ctx context.Context, principal Principal, redemptionID uuid.UUID) (*redemption.Redemption, error)
	Cancel(ctx context.Context, principal Principal, redemptionID uuid.UUID) (*redemption.Redemption, error)
	ExpireLapsed(ctx context.Context) (int64, error)
}

type redemptionUseCaseImpl struct {
	uow     shared.UnitOfWork
	factory *redemption.Factory
	locale  OrgLocale
	clock   clock.Clock
}

func NewRedemptionCommands(
	uow shared.UnitOfWork,
	factory *redemption.Factory,
	locale OrgLocale,
	clk clock.Clock,
) RedemptionCommands {
	return &redemptionUseCaseImpl{
		uow:     uow,
		factory: factory,
		locale:  locale,
		clock:   clk,
	}
}

// Create resolves the catalog, validates coupon rules and caps, and
// persists a PENDING redemption. No balance or entitlement mutation
// happens until approval.
func (uc *redemptionUseCaseImpl) Create(
	ctx context.Context,
	principal Principal,
	req CreateRedemptionRequest,
) (*redemption.Redemption, error) {
	var created *redemption.Redemption
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Reads().MemberByID(ctx, principal.OrganizationID, req.MemberID); err != nil {
			return mapNotFound(err, errs.ErrMemberNotFound)
		}

		pkg, err := tx.Reads().PackageByID(ctx, principal.OrganizationID, req.PackageID)
		if err != nil {
			return mapNotFound(err, errs.ErrPackageNotFound)
		}

		coup, err := uc.resolveCoupon(ctx, tx, principal.OrganizationID, req)
		if err != nil {
			return err
		}

		// A PACKAGE coupon substitutes its own package for the requested
		// one: pricing, credits, and entitlements all come from the
		// substituted package, and its ID is the one recorded.
		if coup != nil && coup.Kind() == catalog.CouponPackage {
			pkg, err = tx.Reads().PackageByID(ctx, principal.OrganizationID, coup.Override().PackageID)
			if err != nil {
				return mapNotFound(err, errs.ErrPackageNotFound)
			}
		}

		if coup != nil {
			if err := uc.checkRedemptionLimits(ctx, tx, coup, req.MemberID); err != nil {
				return err
			}
		}

		r, err := uc.factory.CreateRedemption(
			pkg,
			coup,
			req.MemberID,
			principal.ActorID,
			req.Notes,
			uc.locale.Location(principal.OrganizationID),
		)
		if err != nil {
			return mapCatalogErr(err)
		}

		if err := tx.Redemptions().Create(ctx, r); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Approve is the sole place balance and entitlement side effects occur.
// Everything below runs in one storage transaction: the conditional
// status flip, the coupon cap re-check, the member row lock, the ledger
// append, and the entitlement grants. Either all happen or none do.
func (uc *redemptionUseCaseImpl) Approve(
	ctx context.Context,
	principal Principal,
	redemptionID uuid.UUID,
) (*redemption.Redemption, error) {
	var approved *redemption.Redemption
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Redemptions().FindByID(ctx, principal.OrganizationID, redemptionID)
		if err != nil {
			return mapNotFound(err, errs.ErrRedemptionNotFound)
		}

		if r.Status() != redemption.StatusPending {
			return errs.ErrInvalidState
		}

		// Caps are counted at creation time too, but that count is stale
		// by approval; only this transactional re-check is authoritative.
		// The coupon row lock serializes concurrent approvals sharing a
		// coupon, so the count cannot race at ReadCommitted.
		if r.CouponID() != nil {
			if lerr := tx.Coupons().Lock(ctx, *r.CouponID()); lerr != nil {
				return mapNotFound(lerr, errs.ErrCouponNotFound)
			}
			coup, cerr := tx.Reads().CouponByID(ctx, principal.OrganizationID, *r.CouponID())
			if cerr != nil {
				return mapNotFound(cerr, errs.ErrCouponNotFound)
			}
			if cerr := uc.checkRedemptionLimits(ctx, tx, coup, r.MemberID()); cerr != nil {
				return cerr
			}
		}

		ok, err := tx.Redemptions().TransitionStatus(
			ctx, principal.OrganizationID, redemptionID,
			redemption.StatusPending, redemption.StatusActive,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			return errs.ErrInvalidState
		}

		m, err := tx.Members().FindByIDForUpdate(ctx, r.OrganizationID(), r.MemberID())
		if err != nil {
			return mapNotFound(err, errs.ErrMemberNotFound)
		}

		if credits := r.CreditsToApply(); credits > 0 {
			actor := principal.ActorID
			if _, err := applyBalanceChange(
				ctx, tx, uc.clock, m, credits,
				ledger.TypeRedemptionCredit, "package redemption approved", &actor,
			); err != nil {
				return err
			}
		}

		if expiry := r.AllAccessExpiresAt(); expiry != nil {
			m.GrantAllAccess(*expiry)
		}
		if r.GrantsEliteStatus() {
			m.GrantEliteStatus()
		}
		if err := tx.Members().Save(ctx, m); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := r.Approve(); err != nil {
			return errs.ErrInvalidState
		}
		approved = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return approved, nil
}

// Cancel rejects a PENDING redemption. Nothing was ever applied, so
// there is nothing to compensate.
func (uc *redemptionUseCaseImpl) Cancel(
	ctx context.Context,
	principal Principal,
	redemptionID uuid.UUID,
) (*redemption.Redemption, error) {
	var cancelled *redemption.Redemption
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		r, err := tx.Redemptions().FindByID(ctx, principal.OrganizationID, redemptionID)
		if err != nil {
			return mapNotFound(err, errs.ErrRedemptionNotFound)
		}

		ok, err := tx.Redemptions().TransitionStatus(
			ctx, principal.OrganizationID, redemptionID,
			redemption.StatusPending, redemption.StatusCancelled,
		)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			return errs.ErrInvalidState
		}

		if err := r.Cancel(); err != nil {
			return errs.ErrInvalidState
		}
		cancelled = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cancelled, nil
}

// ExpireLapsed is the background sweep: ACTIVE all-access redemptions
// whose window has passed become EXPIRED and the member flag is cleared.
func (uc *redemptionUseCaseImpl) ExpireLapsed(ctx context.Context) (int64, error) {
	var expired int64
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		now := uc.clock.Now()
		n, err := tx.Redemptions().ExpireLapsedAllAccess(ctx, now)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if _, err := tx.Members().ClearLapsedAllAccess(ctx, now); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		expired = n
		return nil
	})
	return expired, err
}

func (uc *redemptionUseCaseImpl) resolveCoupon(
	ctx context.Context,
	tx shared.Tx,
	orgID uuid.UUID,
	req CreateRedemptionRequest,
) (*catalog.Coupon, error) {
	switch {
	case req.CouponID != nil:
		coup, err := tx.Reads().CouponByID(ctx, orgID, *req.CouponID)
		if err != nil {
			return nil, mapNotFound(err, errs.ErrCouponNotFound)
		}
		return coup, nil
	case req.CouponCode != nil:
		coup, err := tx.Reads().CouponByCode(ctx, orgID, *req.CouponCode)
		if err != nil {
			return nil, mapNotFound(err, errs.ErrCouponNotFound)
		}
		return coup, nil
	default:
		return nil, nil
	}
}

// checkRedemptionLimits counts only ACTIVE redemptions: PENDING requests
// never block each other, so the cap effectively binds at approval.
func (uc *redemptionUseCaseImpl) checkRedemptionLimits(
	ctx context.Context,
	tx shared.Tx,
	coup *catalog.Coupon,
	memberID uuid.UUID,
) error {
	if max := coup.MaxRedemptions(); max != nil {
		count, err := tx.Redemptions().CountActiveByCoupon(ctx, coup.ID())
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if count >= *max {
			return errs.ErrRedemptionLimitReached
		}
	}

	if perMember := coup.MaxRedemptionsPerMember(); perMember > 0 {
		count, err := tx.Redemptions().CountActiveByCouponAndMember(ctx, coup.ID(), memberID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if count >= perMember {
			return errs.ErrPerMemberLimitReached
		}
	}
	return nil
}

func mapNotFound(err error, sentinel error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return sentinel
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

func mapCatalogErr(err error) error {
	switch {
	case errors.Is(err, catalog.ErrPackageInactive):
		return errs.ErrPackageInactive
	case errors.Is(err, catalog.ErrCouponInactive):
		return errs.ErrCouponInactive
	case errors.Is(err, catalog.ErrCouponNotYetValid):
		return errs.ErrCouponNotYetValid
	case errors.Is(err, catalog.ErrCouponExpired):
		return errs.ErrCouponExpired
	default:
		return err
	}
}
