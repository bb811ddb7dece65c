package catalog

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCouponInactive    = errors.New("coupon is inactive")
	ErrCouponNotYetValid = errors.New("coupon is not yet valid")
	ErrCouponExpired     = errors.New("coupon has expired")
	ErrMalformedCoupon   = errors.New("coupon payload does not match its kind")
)

type CouponKind string

const (
	CouponDiscount    CouponKind = "DISCOUNT"
	CouponPackage     CouponKind = "PACKAGE"
	CouponCreditBonus CouponKind = "CREDIT_BONUS"
)

// PackageOverride is the payload of a PACKAGE coupon: it substitutes its
// own package, price, and credits for whatever the member asked for.
type PackageOverride struct {
	PackageID     uuid.UUID
	CustomPrice   *int64
	CustomCredits *int64
}

// Coupon is a tagged variant: exactly one of discount, override, or
// bonusCredits is populated, selected by kind.
type Coupon struct {
	id                      uuid.UUID
	organizationID          uuid.UUID
	code                    Code
	kind                    CouponKind
	discount                *Discount
	override                *PackageOverride
	bonusCredits            *int64
	validFrom               *time.Time
	validUntil              *time.Time
	maxRedemptions          *int64 // nil = unlimited
	maxRedemptionsPerMember int64
	isActive                bool
}

type CouponSpec struct {
	ID                      uuid.UUID
	OrganizationID          uuid.UUID
	Code                    string
	Kind                    CouponKind
	Discount                *Discount
	Override                *PackageOverride
	BonusCredits            *int64
	ValidFrom               *time.Time
	ValidUntil              *time.Time
	MaxRedemptions          *int64
	MaxRedemptionsPerMember int64
	IsActive                bool
}

func NewCoupon(spec CouponSpec) (*Coupon, error) {
	code, err := NewCode(spec.Code)
	if err != nil {
		return nil, err
	}

	switch spec.Kind {
	case CouponDiscount:
		if spec.Discount == nil || spec.Override != nil || spec.BonusCredits != nil {
			return nil, ErrMalformedCoupon
		}
	case CouponPackage:
		if spec.Override == nil || spec.Discount != nil || spec.BonusCredits != nil {
			return nil, ErrMalformedCoupon
		}
	case CouponCreditBonus:
		if spec.BonusCredits == nil || spec.Discount != nil || spec.Override != nil {
			return nil, ErrMalformedCoupon
		}
	default:
		return nil, ErrMalformedCoupon
	}

	return &Coupon{
		id:                      spec.ID,
		organizationID:          spec.OrganizationID,
		code:                    code,
		kind:                    spec.Kind,
		discount:                spec.Discount,
		override:                spec.Override,
		bonusCredits:            spec.BonusCredits,
		validFrom:               spec.ValidFrom,
		validUntil:              spec.ValidUntil,
		maxRedemptions:          spec.MaxRedemptions,
		maxRedemptionsPerMember: spec.MaxRedemptionsPerMember,
		isActive:                spec.IsActive,
	}, nil
}

// ValidateUsage applies the redemption-time rules in order; the first
// failure wins: inactive, then not-yet-valid, then expired.
func (c *Coupon) ValidateUsage(now time.Time) error {
	if !c.isActive {
		return ErrCouponInactive
	}
	if c.validFrom != nil && now.Before(*c.validFrom) {
		return ErrCouponNotYetValid
	}
	if c.validUntil != nil && now.After(*c.validUntil) {
		return ErrCouponExpired
	}
	return nil
}

func (c *Coupon) IsValidAt(t time.Time) bool {
	return c.ValidateUsage(t) == nil
}

func (c *Coupon) ID() uuid.UUID              { return c.id }
func (c *Coupon) OrganizationID() uuid.UUID  { return c.organizationID }
func (c *Coupon) Code() Code                 { return c.code }
func (c *Coupon) Kind() CouponKind           { return c.kind }
func (c *Coupon) Discount() *Discount        { return c.discount }
func (c *Coupon) Override() *PackageOverride { return c.override }
func (c *Coupon) BonusCredits() *int64       { return c.bonusCredits }
func (c *Coupon) ValidFrom() *time.Time      { return c.validFrom }
func (c *Coupon) ValidUntil() *time.Time     { return c.validUntil }
func (c *Coupon) MaxRedemptions() *int64     { return c.maxRedemptions }
func (c *Coupon) MaxRedemptionsPerMember() int64 {
	return c.maxRedemptionsPerMember
}
func (c *Coupon) IsActive() bool { return c.isActive }
