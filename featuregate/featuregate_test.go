package featuregate

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/clock"
	"github.com/facture-ma/dashkit/entitlement"
)

var testNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

func activePro() entitlement.SubscriptionSnapshot {
	exp := testNow.Add(60 * 24 * time.Hour)
	return entitlement.SubscriptionSnapshot{Tier: entitlement.TierPro, ExpiresAt: &exp}
}

func lapsedPro() entitlement.SubscriptionSnapshot {
	exp := testNow.Add(-24 * time.Hour)
	return entitlement.SubscriptionSnapshot{Tier: entitlement.TierPro, ExpiresAt: &exp}
}

func stateOf(t *testing.T, out []Resolved, key string) ItemState {
	t.Helper()
	for _, r := range out {
		if r.Item.Key == key {
			return r.State
		}
	}
	t.Fatalf("item %q missing from resolved catalog", key)
	return ""
}

func TestPermissionDenialDominatesEntitlement(t *testing.T) {
	// Reports is granted to nobody here; even an active pro subscription
	// must not surface a locked teaser.
	member := access.Identity{ID: uuid.New(), Permissions: map[string]bool{access.CapDashboard: true}}
	items := []Item{{Key: access.CapDashboard}, {Key: access.CapReports, RequiresPro: true}}

	out := Resolve(items, member, activePro(), clock.NewFixed(testNow))

	if got := stateOf(t, out, access.CapReports); got != StateHidden {
		t.Errorf("denied pro item = %q, want hidden", got)
	}
	if got := stateOf(t, out, access.CapDashboard); got != StateEnabled {
		t.Errorf("granted free item = %q, want enabled", got)
	}
}

func TestGrantedProItemWithoutEntitlementIsLocked(t *testing.T) {
	member := access.Identity{ID: uuid.New(), Permissions: map[string]bool{access.CapReports: true}}
	items := []Item{{Key: access.CapReports, RequiresPro: true}}

	out := Resolve(items, member, lapsedPro(), clock.NewFixed(testNow))

	if got := stateOf(t, out, access.CapReports); got != StateLocked {
		t.Errorf("granted pro item without entitlement = %q, want locked", got)
	}
}

func TestGrantedProItemWithEntitlementIsEnabled(t *testing.T) {
	member := access.Identity{ID: uuid.New(), Permissions: map[string]bool{access.CapReports: true}}
	items := []Item{{Key: access.CapReports, RequiresPro: true}}

	out := Resolve(items, member, activePro(), clock.NewFixed(testNow))

	if got := stateOf(t, out, access.CapReports); got != StateEnabled {
		t.Errorf("granted pro item with entitlement = %q, want enabled", got)
	}
}

func TestAdminOfLapsedCompanySeesLockedProItems(t *testing.T) {
	// Entitlement is company-wide, never role-based: the admin sees every
	// item but the pro ones stay locked until the company renews.
	admin := access.Identity{ID: uuid.New(), Admin: true}

	out := Resolve(DefaultMenu(), admin, lapsedPro(), clock.NewFixed(testNow))

	for _, r := range out {
		switch {
		case r.State == StateHidden:
			t.Errorf("item %q hidden from admin", r.Item.Key)
		case r.Item.RequiresPro && r.State != StateLocked:
			t.Errorf("pro item %q = %q for lapsed company, want locked", r.Item.Key, r.State)
		case !r.Item.RequiresPro && r.State != StateEnabled:
			t.Errorf("free item %q = %q, want enabled", r.Item.Key, r.State)
		}
	}
}

func TestResolvePreservesCatalogOrder(t *testing.T) {
	admin := access.Identity{ID: uuid.New(), Admin: true}
	items := DefaultMenu()

	out := Resolve(items, admin, activePro(), clock.NewFixed(testNow))

	if len(out) != len(items) {
		t.Fatalf("resolved %d items, want %d", len(out), len(items))
	}
	for i := range items {
		if out[i].Item != items[i] {
			t.Fatalf("item order changed at %d: got %+v, want %+v", i, out[i].Item, items[i])
		}
	}
}
