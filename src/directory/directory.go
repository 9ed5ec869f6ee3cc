package directory

import (
	"context"

	"github.com/harshulchawla1408/Astrousers-sub000/src/models"
)

// AdvisorInfo is the capability set the external directory holds for an
// identity: whether it is a registered advisor, its per-minute rate, and the
// channels it is able to serve. Resolved once at this boundary; the rest of
// the service only ever sees a plain identity id.
type AdvisorInfo struct {
	IdentityID    string
	IsAdvisor     bool
	RatePerMinute int64
	Channels      models.Availability
}

// Directory looks up identities in the external advisor/user directory.
// The consult service reads but does not own this data.
type Directory interface {
	// Lookup returns the capability set for an identity, or
	// models.ErrIdentityNotFound if the directory has no record of it.
	Lookup(ctx context.Context, identityID string) (*AdvisorInfo, error)
}
