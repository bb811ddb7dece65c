package catalog

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode            = errors.New("invalid catalog code format")
	ErrInvalidDiscountAmount  = errors.New("discount amount cannot be negative")
	ErrInvalidDiscountPercent = errors.New("percentage discount must be between 0 and 100")
)

var codeRegex = regexp.MustCompile(`^[A-Z0-9_-]{2,32}$`)

// Code identifies a package or coupon, unique per organization.
type Code string

func NewCode(code string) (Code, error) {
	code = strings.TrimSpace(strings.ToUpper(code))
	if !codeRegex.MatchString(code) {
		return Code(""), ErrInvalidCode
	}
	return Code(code), nil
}

func (c Code) String() string {
	return string(c)
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "PERCENTAGE"
	DiscountFixed      DiscountType = "FIXED_AMOUNT"
)

type Discount struct {
	discountType DiscountType
	value        int64
}

func NewFixedDiscount(amountCents int64) (Discount, error) {
	if amountCents < 0 {
		return Discount{}, ErrInvalidDiscountAmount
	}
	return Discount{discountType: DiscountFixed, value: amountCents}, nil
}

func NewPercentageDiscount(percent int64) (Discount, error) {
	if percent < 0 || percent > 100 {
		return Discount{}, ErrInvalidDiscountPercent
	}
	return Discount{discountType: DiscountPercentage, value: percent}, nil
}

func NewDiscount(discountType DiscountType, value int64) (Discount, error) {
	switch discountType {
	case DiscountPercentage:
		return NewPercentageDiscount(value)
	case DiscountFixed:
		return NewFixedDiscount(value)
	default:
		return Discount{}, errors.New("unknown discount type")
	}
}

func (d Discount) Type() DiscountType {
	return d.discountType
}

func (d Discount) Value() int64 {
	return d.value
}

// AmountOff returns the discount in cents for the given price, clamped so
// the discounted price never goes below zero.
func (d Discount) AmountOff(priceCents int64) int64 {
	var off int64
	switch d.discountType {
	case DiscountPercentage:
		off = d.value * priceCents / 100
	case DiscountFixed:
		off = d.value
	}
	if off > priceCents {
		return priceCents
	}
	return off
}

// Benefit is a tag attached to a package (e.g. friend_pass).
type Benefit string

const BenefitFriendPass Benefit = "friend_pass"
