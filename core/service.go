// Package core wires the pure engine (entitlement, access, featuregate,
// projects) to the external data-access collaborator. Every operation loads
// snapshots, runs the engine, and returns derived structures; nothing here
// holds mutable shared state.
package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/clock"
	"github.com/facture-ma/dashkit/entitlement"
	"github.com/facture-ma/dashkit/featuregate"
	"github.com/facture-ma/dashkit/projects"
)

var (
	// ErrPermissionDenied: the member lacks the capability outright.
	ErrPermissionDenied = errors.New("dashkit: permission denied")
	// ErrProRequired: capability granted, but the company has no active pro
	// entitlement.
	ErrProRequired = errors.New("dashkit: pro subscription required")
)

// Config collects the service's collaborators. Subscriptions and Identities
// are required; the rest default sensibly.
type Config struct {
	Subscriptions SubscriptionStore
	Identities    IdentityStore
	Projects      ProjectStore
	Clock         clock.Clock
	Menu          []featuregate.Item
	Logger        *logrus.Logger
	Events        EventLogger
}

// Service computes derived dashboard state. Safe for concurrent use: every
// call only reads its arguments, the stores, and the clock.
type Service struct {
	subs   SubscriptionStore
	ids    IdentityStore
	projs  ProjectStore
	clk    clock.Clock
	menu   []featuregate.Item
	log    *logrus.Logger
	events EventLogger
}

func NewService(cfg Config) (*Service, error) {
	if cfg.Subscriptions == nil {
		return nil, errors.New("core: missing subscription store")
	}
	if cfg.Identities == nil {
		return nil, errors.New("core: missing identity store")
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.System{}
	}
	menu := cfg.Menu
	if menu == nil {
		menu = featuregate.DefaultMenu()
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}
	return &Service{
		subs:   cfg.Subscriptions,
		ids:    cfg.Identities,
		projs:  cfg.Projects,
		clk:    clk,
		menu:   menu,
		log:    log,
		events: cfg.Events,
	}, nil
}

// Badge hints which account banner to render; precedence is
// active > pending > free.
type Badge string

const (
	BadgeActive  Badge = "active"
	BadgePending Badge = "pending"
	BadgeFree    Badge = "free"
)

// AccountOverview is the account screen's derived state.
type AccountOverview struct {
	Subscription entitlement.SubscriptionSnapshot `json:"subscription"`
	Entitlement  entitlement.State                `json:"entitlement"`
	Badge        Badge                            `json:"badge"`
	// CanRenew is the admin-only renewal affordance. Entitlement itself is
	// company-wide and never role-gated; only the button is.
	CanRenew bool `json:"can_renew"`
}

// AccountOverview evaluates the company's entitlement for the account
// screen.
func (s *Service) AccountOverview(ctx context.Context, companyID, userID uuid.UUID) (AccountOverview, error) {
	id, err := s.ids.IdentityByUser(ctx, companyID, userID)
	if err != nil {
		return AccountOverview{}, fmt.Errorf("core: load identity: %w", err)
	}
	sub, err := s.subs.SubscriptionByCompany(ctx, companyID)
	if err != nil {
		return AccountOverview{}, fmt.Errorf("core: load subscription: %w", err)
	}

	st := entitlement.Evaluate(sub, s.clk)
	out := AccountOverview{
		Subscription: sub,
		Entitlement:  st,
		Badge:        badgeFor(st),
		CanRenew:     id.Admin,
	}

	s.log.WithFields(logrus.Fields{
		"company_id": companyID,
		"active":     st.Active,
		"expired":    st.Expired,
		"warning":    st.Warning,
	}).Debug("account overview evaluated")
	return out, nil
}

func badgeFor(st entitlement.State) Badge {
	switch {
	case st.Active:
		return BadgeActive
	case st.ActivationPending:
		return BadgePending
	default:
		return BadgeFree
	}
}

// Menu resolves the sidebar catalog for one member.
func (s *Service) Menu(ctx context.Context, companyID, userID uuid.UUID) ([]featuregate.Resolved, error) {
	id, err := s.ids.IdentityByUser(ctx, companyID, userID)
	if err != nil {
		return nil, fmt.Errorf("core: load identity: %w", err)
	}
	sub, err := s.subs.SubscriptionByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("core: load subscription: %w", err)
	}
	return featuregate.Resolve(s.menu, id, sub, s.clk), nil
}

// ProjectDashboard classifies the company's work records. The projects
// surface is a pro feature: the member needs the capability and the company
// an active entitlement.
func (s *Service) ProjectDashboard(ctx context.Context, companyID, userID uuid.UUID) (projects.Summary, error) {
	if s.projs == nil {
		return projects.Summary{}, errors.New("core: no project store configured")
	}
	id, err := s.ids.IdentityByUser(ctx, companyID, userID)
	if err != nil {
		return projects.Summary{}, fmt.Errorf("core: load identity: %w", err)
	}
	if !access.CanAccess(id, access.CapProjects) {
		s.logDecision(ctx, companyID, userID, "projects", "denied")
		return projects.Summary{}, ErrPermissionDenied
	}

	sub, err := s.subs.SubscriptionByCompany(ctx, companyID)
	if err != nil {
		return projects.Summary{}, fmt.Errorf("core: load subscription: %w", err)
	}
	if !entitlement.Evaluate(sub, s.clk).Active {
		s.logDecision(ctx, companyID, userID, "projects", "locked")
		return projects.Summary{}, ErrProRequired
	}

	recs, err := s.projs.ProjectsByCompany(ctx, companyID)
	if err != nil {
		return projects.Summary{}, fmt.Errorf("core: load projects: %w", err)
	}
	sum := projects.Classify(recs, s.clk)

	s.log.WithFields(logrus.Fields{
		"company_id": companyID,
		"total":      sum.Counts.Total,
		"overdue":    sum.Counts.Overdue,
	}).Debug("project dashboard classified")
	return sum, nil
}

func (s *Service) logDecision(ctx context.Context, companyID, userID uuid.UUID, surface, decision string) {
	if s.events == nil {
		return
	}
	s.events.LogDecision(ctx, companyID, userID, surface, decision)
}
