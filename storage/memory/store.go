// Package memorystore provides in-memory implementations of the core store
// interfaces for tests and single-node development, when Postgres is not
// wired in.
package memorystore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/entitlement"
	"github.com/facture-ma/dashkit/projects"
)

// Store keeps subscriptions, identities, and project records in maps.
type Store struct {
	mu       sync.RWMutex
	subs     map[uuid.UUID]entitlement.SubscriptionSnapshot
	ids      map[uuid.UUID]access.Identity
	projects map[uuid.UUID][]projects.Record
}

func New() *Store {
	return &Store{
		subs:     make(map[uuid.UUID]entitlement.SubscriptionSnapshot),
		ids:      make(map[uuid.UUID]access.Identity),
		projects: make(map[uuid.UUID][]projects.Record),
	}
}

// SetSubscription stores a company's subscription snapshot.
func (s *Store) SetSubscription(companyID uuid.UUID, sub entitlement.SubscriptionSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[companyID] = sub
}

// SetIdentity stores a member identity.
func (s *Store) SetIdentity(id access.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id.ID] = id
}

// SetProjects replaces a company's project records.
func (s *Store) SetProjects(companyID uuid.UUID, recs []projects.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]projects.Record, len(recs))
	copy(cp, recs)
	s.projects[companyID] = cp
}

// SubscriptionByCompany returns the stored snapshot; an unknown company
// reads as a free account.
func (s *Store) SubscriptionByCompany(_ context.Context, companyID uuid.UUID) (entitlement.SubscriptionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sub, ok := s.subs[companyID]; ok {
		return sub, nil
	}
	return entitlement.SubscriptionSnapshot{Tier: entitlement.TierFree}, nil
}

// IdentityByUser returns the stored identity; an unknown member reads as an
// identity with no grants.
func (s *Store) IdentityByUser(_ context.Context, companyID, userID uuid.UUID) (access.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id, ok := s.ids[userID]; ok && id.CompanyID == companyID {
		return id, nil
	}
	return access.Identity{ID: userID, CompanyID: companyID}, nil
}

// ProjectsByCompany returns a copy of the company's records.
func (s *Store) ProjectsByCompany(_ context.Context, companyID uuid.UUID) ([]projects.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recs := s.projects[companyID]
	cp := make([]projects.Record, len(recs))
	copy(cp, recs)
	return cp, nil
}

// Subscriptions returns every stored subscription keyed by company, for
// sweep jobs.
func (s *Store) Subscriptions(_ context.Context) (map[uuid.UUID]entitlement.SubscriptionSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[uuid.UUID]entitlement.SubscriptionSnapshot, len(s.subs))
	for k, v := range s.subs {
		out[k] = v
	}
	return out, nil
}
