package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPackageInactive     = errors.New("package is inactive")
	ErrMissingCredits      = errors.New("credit-granting package must define credits")
	ErrInvalidPackagePrice = errors.New("package price cannot be negative")
)

type PackageType string

const (
	PackageSingleRide PackageType = "SINGLE_RIDE"
	PackageCreditPack PackageType = "CREDIT_PACK"
	PackageElite30    PackageType = "ELITE_30"
	PackageAllAccess  PackageType = "ALL_ACCESS"
)

// Package is read-mostly reference data. Redemptions snapshot the fields
// they need at redemption time, so later edits never rewrite history.
type Package struct {
	id             uuid.UUID
	organizationID uuid.UUID
	code           Code
	name           string
	packageType    PackageType
	priceCents     int64
	credits        *int64 // nil for ALL_ACCESS
	benefits       []Benefit
	isActive       bool
}

func NewPackage(
	id, organizationID uuid.UUID,
	code string,
	name string,
	packageType PackageType,
	priceCents int64,
	credits *int64,
	benefits []Benefit,
	isActive bool,
) (*Package, error) {
	pkgCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}
	if priceCents < 0 {
		return nil, ErrInvalidPackagePrice
	}
	if packageType != PackageAllAccess && credits == nil {
		return nil, ErrMissingCredits
	}

	return &Package{
		id:             id,
		organizationID: organizationID,
		code:           pkgCode,
		name:           name,
		packageType:    packageType,
		priceCents:     priceCents,
		credits:        credits,
		benefits:       benefits,
		isActive:       isActive,
	}, nil
}

func (p *Package) ValidateUsage() error {
	if !p.isActive {
		return ErrPackageInactive
	}
	return nil
}

func (p *Package) HasBenefit(b Benefit) bool {
	for _, have := range p.benefits {
		if have == b {
			return true
		}
	}
	return false
}

func (p *Package) GrantsAllAccess() bool {
	return p.packageType == PackageAllAccess
}

func (p *Package) GrantsEliteStatus() bool {
	return p.packageType == PackageElite30
}

func (p *Package) ID() uuid.UUID             { return p.id }
func (p *Package) OrganizationID() uuid.UUID { return p.organizationID }
func (p *Package) Code() Code                { return p.code }
func (p *Package) Name() string              { return p.name }
func (p *Package) Type() PackageType         { return p.packageType }
func (p *Package) PriceCents() int64         { return p.priceCents }
func (p *Package) Credits() *int64           { return p.credits }
func (p *Package) Benefits() []Benefit       { return p.benefits }
func (p *Package) IsActive() bool            { return p.isActive }
