// Package featuregate composes permission and entitlement checks into a
// three-way verdict per menu item. Permission gating and entitlement gating
// are orthogonal and compose in a fixed precedence order: a member who may
// not see a feature at all must not even see a locked teaser for it.
package featuregate

import (
	"github.com/facture-ma/dashkit/access"
	"github.com/facture-ma/dashkit/clock"
	"github.com/facture-ma/dashkit/entitlement"
)

// ItemState is the visibility verdict for one item.
type ItemState string

const (
	StateEnabled ItemState = "enabled"
	// StateLocked means visible but gated: interaction should surface an
	// upgrade prompt instead of navigating.
	StateLocked ItemState = "locked"
	StateHidden ItemState = "hidden"
)

// Item describes one entry of the feature catalog.
type Item struct {
	Key         string `json:"key"`
	RequiresPro bool   `json:"requires_pro"`
}

// Resolved pairs an item with its computed state.
type Resolved struct {
	Item  Item      `json:"item"`
	State ItemState `json:"state"`
}

// Resolve gates each item in order: a permission denial hides the item
// outright, then a pro item without active entitlement is locked, and
// everything else is enabled. The entitlement is evaluated once for the
// whole catalog.
func Resolve(items []Item, id access.Identity, sub entitlement.SubscriptionSnapshot, clk clock.Clock) []Resolved {
	st := entitlement.Evaluate(sub, clk)

	out := make([]Resolved, 0, len(items))
	for _, it := range items {
		out = append(out, Resolved{Item: it, State: resolveOne(it, id, st)})
	}
	return out
}

func resolveOne(it Item, id access.Identity, st entitlement.State) ItemState {
	if !access.CanAccess(id, it.Key) {
		return StateHidden
	}
	if it.RequiresPro && !st.Active {
		return StateLocked
	}
	return StateEnabled
}

// DefaultMenu is the stock sidebar catalog of an invoicing dashboard.
func DefaultMenu() []Item {
	return []Item{
		{Key: access.CapDashboard},
		{Key: access.CapInvoices},
		{Key: access.CapQuotes},
		{Key: access.CapClients},
		{Key: access.CapProducts},
		{Key: access.CapSuppliers},
		{Key: access.CapSupplierManagement, RequiresPro: true},
		{Key: access.CapStockManagement, RequiresPro: true},
		{Key: access.CapReports, RequiresPro: true},
		{Key: access.CapHRManagement, RequiresPro: true},
		{Key: access.CapAccountManagement, RequiresPro: true},
		{Key: access.CapProjects, RequiresPro: true},
		{Key: access.CapSettings},
	}
}
