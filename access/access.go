// Package access answers whether a company member may use a capability.
// Grants are an explicit key→bool mapping with default-deny semantics, so a
// newly introduced capability stays invisible to every non-admin until it
// is granted somewhere.
package access

import "github.com/google/uuid"

// Capability keys for gated menu and feature items.
const (
	CapDashboard          = "dashboard"
	CapInvoices           = "invoices"
	CapQuotes             = "quotes"
	CapClients            = "clients"
	CapProducts           = "products"
	CapSuppliers          = "suppliers"
	CapSupplierManagement = "supplier_management"
	CapStockManagement    = "stock_management"
	CapReports            = "reports"
	CapHRManagement       = "hr_management"
	CapAccountManagement  = "account_management"
	CapProjects           = "projects"
	CapSettings           = "settings"
)

// Identity is a snapshot of a company member's role and grants. It is
// supplied per call and never mutated here.
type Identity struct {
	ID          uuid.UUID       `json:"id"`
	CompanyID   uuid.UUID       `json:"company_id"`
	Admin       bool            `json:"admin"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

// CanAccess reports whether the identity may use the capability.
// Admins may use everything regardless of their permission set. Everyone
// else needs the key present and explicitly true; an absent key or an
// explicit false both deny.
func CanAccess(id Identity, capability string) bool {
	if id.Admin {
		return true
	}
	return id.Permissions[capability]
}
