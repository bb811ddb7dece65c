package commands

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the opaque identity supplied by the external auth layer.
// Cross-tenant access is rejected before reaching this package; the
// organization ID here scopes every read and write.
type Principal struct {
	ActorID        uuid.UUID
	OrganizationID uuid.UUID
	Role           string
}

const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

// OrgLocale resolves the organization-local timezone used for calendar
// rules (entitlement expiry clamping, daily usage dates).
type OrgLocale interface {
	Location(orgID uuid.UUID) *time.Location
}

type fixedLocale struct {
	loc *time.Location
}

// NewFixedLocale serves one timezone for all organizations. Per-org
// timezones come from the organizations table once they diverge.
func NewFixedLocale(loc *time.Location) OrgLocale {
	return &fixedLocale{loc: loc}
}

func (l *fixedLocale) Location(uuid.UUID) *time.Location {
	return l.loc
}
