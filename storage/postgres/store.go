// Package postgres loads dashboard snapshots from the ERP schema. It is the
// production Data Access collaborator: rows come out as already-parsed
// engine snapshots and nothing here derives state.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/entitlement"
	"github.com/facture-ma/dashkit/projects"
)

// Store provides snapshot lookups against the ERP schema.
type Store struct {
	pg     *pgxpool.Pool
	schema string
}

func NewStore(pg *pgxpool.Pool, schema string) *Store {
	s := strings.TrimSpace(schema)
	if s == "" {
		s = "erp"
	}
	return &Store{pg: pg, schema: s}
}

func (s *Store) companiesTable() string { return s.schema + ".companies" }
func (s *Store) membersTable() string   { return s.schema + ".company_members" }
func (s *Store) projectsTable() string  { return s.schema + ".projects" }

// SubscriptionByCompany returns the company's subscription snapshot.
// Unknown companies read as free accounts; a NULL expiry stays nil so the
// evaluator degrades it to "no entitlement".
func (s *Store) SubscriptionByCompany(ctx context.Context, companyID uuid.UUID) (entitlement.SubscriptionSnapshot, error) {
	snap := entitlement.SubscriptionSnapshot{Tier: entitlement.TierFree}
	if s.pg == nil || companyID == uuid.Nil {
		return snap, nil
	}
	var tier string
	var expires *time.Time
	var pending bool
	err := s.pg.QueryRow(ctx,
		`SELECT subscription_tier, subscription_expires_at, activation_pending FROM `+s.companiesTable()+` WHERE id=$1 LIMIT 1`,
		companyID).Scan(&tier, &expires, &pending)
	if errors.Is(err, pgx.ErrNoRows) {
		return snap, nil
	}
	if err != nil {
		return snap, err
	}
	snap.Tier = entitlement.Tier(tier)
	snap.ExpiresAt = expires
	snap.ActivationPending = pending
	return snap, nil
}

// Subscriptions returns every company's snapshot keyed by company ID, for
// sweep jobs.
func (s *Store) Subscriptions(ctx context.Context) (map[uuid.UUID]entitlement.SubscriptionSnapshot, error) {
	out := make(map[uuid.UUID]entitlement.SubscriptionSnapshot)
	if s.pg == nil {
		return out, nil
	}
	rows, err := s.pg.Query(ctx,
		`SELECT id, subscription_tier, subscription_expires_at, activation_pending FROM `+s.companiesTable())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		var tier string
		var expires *time.Time
		var pending bool
		if err := rows.Scan(&id, &tier, &expires, &pending); err != nil {
			return nil, err
		}
		out[id] = entitlement.SubscriptionSnapshot{
			Tier:              entitlement.Tier(tier),
			ExpiresAt:         expires,
			ActivationPending: pending,
		}
	}
	return out, rows.Err()
}

// IdentityByUser returns the member's role and permission set. Unknown
// members read as an identity with no grants, which downstream default-deny
// handles.
func (s *Store) IdentityByUser(ctx context.Context, companyID, userID uuid.UUID) (access.Identity, error) {
	id := access.Identity{ID: userID, CompanyID: companyID}
	if s.pg == nil || companyID == uuid.Nil || userID == uuid.Nil {
		return id, nil
	}
	var admin bool
	var permsJSON []byte
	err := s.pg.QueryRow(ctx,
		`SELECT is_admin, permissions FROM `+s.membersTable()+` WHERE company_id=$1 AND user_id=$2 LIMIT 1`,
		companyID, userID).Scan(&admin, &permsJSON)
	if errors.Is(err, pgx.ErrNoRows) {
		return id, nil
	}
	if err != nil {
		return id, err
	}
	id.Admin = admin
	if len(permsJSON) > 0 {
		perms := map[string]bool{}
		if err := json.Unmarshal(permsJSON, &perms); err == nil {
			id.Permissions = perms
		}
	}
	return id, nil
}

// ProjectsByCompany returns the company's work records. A NULL end_date
// stays nil so the classifier treats the record as deadline-free.
func (s *Store) ProjectsByCompany(ctx context.Context, companyID uuid.UUID) ([]projects.Record, error) {
	out := []projects.Record{}
	if s.pg == nil || companyID == uuid.Nil {
		return out, nil
	}
	rows, err := s.pg.Query(ctx,
		`SELECT id, name, status, start_date, end_date, progress, budget, priority, created_at
		 FROM `+s.projectsTable()+` WHERE company_id=$1`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var r projects.Record
		var status, priority string
		if err := rows.Scan(&r.ID, &r.Name, &status, &r.StartDate, &r.EndDate, &r.Progress, &r.Budget, &priority, &r.CreatedAt); err != nil {
			return nil, err
		}
		r.Status = projects.Status(status)
		r.Priority = projects.Priority(priority)
		out = append(out, r)
	}
	return out, rows.Err()
}
