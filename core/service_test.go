package core

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/clock"
	"github.com/facture-ma/dashkit/entitlement"
	"github.com/facture-ma/dashkit/featuregate"
	"github.com/facture-ma/dashkit/projects"
	memorystore "github.com/facture-ma/dashkit/storage/memory"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestService(t *testing.T, store *memorystore.Store) *Service {
	t.Helper()
	svc, err := NewService(Config{
		Subscriptions: store,
		Identities:    store,
		Projects:      store,
		Clock:         clock.NewFixed(testNow),
		Logger:        quietLogger(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func seedCompany(store *memorystore.Store, tier entitlement.Tier, expiresIn time.Duration, admin bool, perms map[string]bool) (companyID, userID uuid.UUID) {
	companyID, userID = uuid.New(), uuid.New()
	sub := entitlement.SubscriptionSnapshot{Tier: tier}
	if expiresIn != 0 {
		exp := testNow.Add(expiresIn)
		sub.ExpiresAt = &exp
	}
	store.SetSubscription(companyID, sub)
	store.SetIdentity(access.Identity{ID: userID, CompanyID: companyID, Admin: admin, Permissions: perms})
	return companyID, userID
}

func TestAccountOverviewAdminRenewAffordance(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(t, store)
	companyID, adminID := seedCompany(store, entitlement.TierPro, 3*24*time.Hour, true, nil)

	out, err := svc.AccountOverview(context.Background(), companyID, adminID)
	if err != nil {
		t.Fatalf("AccountOverview: %v", err)
	}
	if !out.Entitlement.Active || !out.Entitlement.Warning {
		t.Errorf("entitlement = %+v, want active with warning", out.Entitlement)
	}
	if out.Badge != BadgeActive {
		t.Errorf("badge = %q, want active", out.Badge)
	}
	if !out.CanRenew {
		t.Error("admins must see the renewal affordance")
	}

	memberID := uuid.New()
	store.SetIdentity(access.Identity{ID: memberID, CompanyID: companyID, Permissions: map[string]bool{access.CapDashboard: true}})
	out, err = svc.AccountOverview(context.Background(), companyID, memberID)
	if err != nil {
		t.Fatalf("AccountOverview: %v", err)
	}
	if out.CanRenew {
		t.Error("non-admins must not see the renewal affordance")
	}
}

func TestAccountOverviewBadgePrecedence(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(t, store)

	// Active wins over a stale pending flag.
	companyID, userID := seedCompany(store, entitlement.TierPro, 30*24*time.Hour, true, nil)
	exp := testNow.Add(30 * 24 * time.Hour)
	store.SetSubscription(companyID, entitlement.SubscriptionSnapshot{Tier: entitlement.TierPro, ExpiresAt: &exp, ActivationPending: true})

	out, err := svc.AccountOverview(context.Background(), companyID, userID)
	if err != nil {
		t.Fatalf("AccountOverview: %v", err)
	}
	if out.Badge != BadgeActive {
		t.Errorf("badge = %q, want active to win over pending", out.Badge)
	}
	if !out.Entitlement.ActivationPending {
		t.Error("raw pending flag must still be reported")
	}

	// Pending wins over free.
	store.SetSubscription(companyID, entitlement.SubscriptionSnapshot{Tier: entitlement.TierFree, ActivationPending: true})
	out, _ = svc.AccountOverview(context.Background(), companyID, userID)
	if out.Badge != BadgePending {
		t.Errorf("badge = %q, want pending", out.Badge)
	}

	store.SetSubscription(companyID, entitlement.SubscriptionSnapshot{Tier: entitlement.TierFree})
	out, _ = svc.AccountOverview(context.Background(), companyID, userID)
	if out.Badge != BadgeFree {
		t.Errorf("badge = %q, want free", out.Badge)
	}
}

func TestMenuResolvesAgainstDefaultCatalog(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(t, store)
	companyID, userID := seedCompany(store, entitlement.TierFree, 0, false, map[string]bool{
		access.CapDashboard: true,
		access.CapReports:   true,
	})

	out, err := svc.Menu(context.Background(), companyID, userID)
	if err != nil {
		t.Fatalf("Menu: %v", err)
	}
	if len(out) != len(featuregate.DefaultMenu()) {
		t.Fatalf("resolved %d items, want the full catalog", len(out))
	}
	for _, r := range out {
		switch r.Item.Key {
		case access.CapDashboard:
			if r.State != featuregate.StateEnabled {
				t.Errorf("dashboard = %q, want enabled", r.State)
			}
		case access.CapReports:
			if r.State != featuregate.StateLocked {
				t.Errorf("reports without entitlement = %q, want locked", r.State)
			}
		case access.CapInvoices:
			if r.State != featuregate.StateHidden {
				t.Errorf("ungranted invoices = %q, want hidden", r.State)
			}
		}
	}
}

func TestProjectDashboardHappyPath(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(t, store)
	companyID, userID := seedCompany(store, entitlement.TierPro, 60*24*time.Hour, false, map[string]bool{access.CapProjects: true})

	end := testNow.Add(-2 * 24 * time.Hour)
	store.SetProjects(companyID, []projects.Record{
		{ID: uuid.New(), Name: "late", Status: projects.StatusInProgress, EndDate: &end, CreatedAt: testNow},
	})

	sum, err := svc.ProjectDashboard(context.Background(), companyID, userID)
	if err != nil {
		t.Fatalf("ProjectDashboard: %v", err)
	}
	if sum.Counts.Overdue != 1 || sum.Counts.Total != 1 {
		t.Errorf("counts = %+v, want one overdue of one", sum.Counts)
	}
}

func TestProjectDashboardDeniedWithoutCapability(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(t, store)
	companyID, userID := seedCompany(store, entitlement.TierPro, 60*24*time.Hour, false, nil)

	_, err := svc.ProjectDashboard(context.Background(), companyID, userID)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestProjectDashboardLockedWithoutEntitlement(t *testing.T) {
	store := memorystore.New()
	svc := newTestService(t, store)
	companyID, userID := seedCompany(store, entitlement.TierPro, -24*time.Hour, false, map[string]bool{access.CapProjects: true})

	_, err := svc.ProjectDashboard(context.Background(), companyID, userID)
	if !errors.Is(err, ErrProRequired) {
		t.Fatalf("err = %v, want ErrProRequired", err)
	}
}

type captureEvents struct {
	decisions []string
}

func (c *captureEvents) LogDecision(_ context.Context, _, _ uuid.UUID, surface, decision string) {
	c.decisions = append(c.decisions, surface+":"+decision)
}

func TestGateDecisionsAreRecorded(t *testing.T) {
	store := memorystore.New()
	events := &captureEvents{}
	svc, err := NewService(Config{
		Subscriptions: store,
		Identities:    store,
		Projects:      store,
		Clock:         clock.NewFixed(testNow),
		Logger:        quietLogger(),
		Events:        events,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	companyID, userID := seedCompany(store, entitlement.TierFree, 0, false, map[string]bool{access.CapProjects: true})
	_, _ = svc.ProjectDashboard(context.Background(), companyID, userID)

	denied := uuid.New()
	store.SetIdentity(access.Identity{ID: denied, CompanyID: companyID})
	_, _ = svc.ProjectDashboard(context.Background(), companyID, denied)

	want := []string{"projects:locked", "projects:denied"}
	if len(events.decisions) != 2 || events.decisions[0] != want[0] || events.decisions[1] != want[1] {
		t.Errorf("decisions = %v, want %v", events.decisions, want)
	}
}
