package core

import (
	"context"

	"github.com/google/uuid"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/entitlement"
	"github.com/facture-ma/dashkit/projects"
)

// Data access is an external collaborator: stores hand the service
// already-loaded in-memory snapshots and the engine never touches storage
// itself.

// SubscriptionStore loads a company's subscription snapshot.
type SubscriptionStore interface {
	SubscriptionByCompany(ctx context.Context, companyID uuid.UUID) (entitlement.SubscriptionSnapshot, error)
}

// IdentityStore loads a company member's role and permission set.
type IdentityStore interface {
	IdentityByUser(ctx context.Context, companyID, userID uuid.UUID) (access.Identity, error)
}

// ProjectStore loads a company's work records.
type ProjectStore interface {
	ProjectsByCompany(ctx context.Context, companyID uuid.UUID) ([]projects.Record, error)
}
