package errs

import "errors"

// Sentinel errors shared across usecase layers.
var (
	// Member / ledger errors
	ErrMemberNotFound   = errors.New("member not found")
	ErrZeroAmountChange = errors.New("balance change amount must be non-zero")

	// Catalog errors
	ErrPackageNotFound   = errors.New("package not found")
	ErrPackageInactive   = errors.New("package is inactive")
	ErrCouponNotFound    = errors.New("coupon not found")
	ErrCouponInactive    = errors.New("coupon is inactive")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrCouponExpired     = errors.New("coupon has expired")

	// Redemption workflow errors
	ErrRedemptionNotFound     = errors.New("redemption not found")
	ErrInvalidState           = errors.New("redemption is not in a state valid for this transition")
	ErrRedemptionLimitReached = errors.New("coupon redemption limit reached")
	ErrPerMemberLimitReached  = errors.New("per-member coupon redemption limit reached")
	ErrRedemptionNotActive    = errors.New("redemption is not active")

	// Entitlement usage errors
	ErrDayAlreadyUsed     = errors.New("daily entitlement already used")
	ErrEntitlementExpired = errors.New("entitlement has expired")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
