package redemption

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	StatusExpired   Status = "EXPIRED"
	StatusUsed      Status = "USED"
)

// CanTransitionTo encodes the workflow: PENDING is the only non-terminal
// origin for approval and cancellation; EXPIRED and USED are reached from
// ACTIVE by time- or usage-based sweeps.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusPending:
		return next == StatusActive || next == StatusCancelled
	case StatusActive:
		return next == StatusExpired || next == StatusUsed
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusExpired || s == StatusUsed
}

type Type string

const (
	TypePackageDirect  Type = "PACKAGE_DIRECT"
	TypeCouponPackage  Type = "COUPON_PACKAGE"
	TypeCouponDiscount Type = "COUPON_DISCOUNT"
)
