// Package acl holds the static permission registry and the role-permission
// matrix that gates every dashboard action.
package acl

// Permissions gating vehicle operations.
const (
	PermVehicleCreate = "vehicle:create"
	PermVehicleRead   = "vehicle:read"
	PermVehicleList   = "vehicle:list"
	PermVehicleEdit   = "vehicle:edit"
	PermVehicleDelete = "vehicle:delete"
	PermVehicleMap    = "vehicle:map"
)

// Permissions gating customer operations.
const (
	PermCustomerCreate = "customer:create"
	PermCustomerRead   = "customer:read"
	PermCustomerList   = "customer:list"
	PermCustomerEdit   = "customer:edit"
	PermCustomerDelete = "customer:delete"
)

// Permissions gating zone operations.
const (
	PermZoneCreate = "zone:create"
	PermZoneRead   = "zone:read"
	PermZoneList   = "zone:list"
	PermZoneEdit   = "zone:edit"
	PermZoneDelete = "zone:delete"
)

// Permissions gating delivery operations.
const (
	PermDeliveryCreate       = "delivery:create"
	PermDeliveryRead         = "delivery:read"
	PermDeliveryList         = "delivery:list"
	PermDeliveryEdit         = "delivery:edit"
	PermDeliveryDelete       = "delivery:delete"
	PermDeliveryPrepare      = "delivery:prepare"
	PermDeliveryLoad         = "delivery:load"
	PermDeliveryDeliver      = "delivery:deliver"
	PermDeliveryAdvancedView = "delivery:advanced_view"
)

// Permissions gating route operations.
const (
	PermRouteCreate = "route:create"
)

// Permissions gating media operations.
const (
	PermMediaCreate = "media:create"
	PermMediaRead   = "media:read"
	PermMediaList   = "media:list"
	PermMediaEdit   = "media:edit"
	PermMediaDelete = "media:delete"
)

// allPermissions lists every declared permission in declaration order.
var allPermissions = []string{
	PermVehicleCreate, PermVehicleRead, PermVehicleList, PermVehicleEdit,
	PermVehicleDelete, PermVehicleMap,

	PermCustomerCreate, PermCustomerRead, PermCustomerList, PermCustomerEdit,
	PermCustomerDelete,

	PermZoneCreate, PermZoneRead, PermZoneList, PermZoneEdit, PermZoneDelete,

	PermDeliveryCreate, PermDeliveryRead, PermDeliveryList, PermDeliveryEdit,
	PermDeliveryDelete, PermDeliveryPrepare, PermDeliveryLoad,
	PermDeliveryDeliver, PermDeliveryAdvancedView,

	PermRouteCreate,

	PermMediaCreate, PermMediaRead, PermMediaList, PermMediaEdit,
	PermMediaDelete,
}

// administratorExclusions are the permissions withheld from administrators.
// Creating routes is a carrier-only action.
var administratorExclusions = []string{
	PermRouteCreate,
}

// AllPermissions returns every declared permission in declaration order.
func AllPermissions() []string {
	out := make([]string, len(allPermissions))
	copy(out, allPermissions)
	return out
}

// AdministratorPermissions derives the administrator set as the full registry
// minus the exclusion list. It recomputes on every call so a registry change
// is never served from a stale snapshot.
func AdministratorPermissions(exclusions []string) []string {
	excluded := make(map[string]struct{}, len(exclusions))
	for _, p := range exclusions {
		excluded[p] = struct{}{}
	}
	out := make([]string, 0, len(allPermissions))
	for _, p := range allPermissions {
		if _, skip := excluded[p]; skip {
			continue
		}
		out = append(out, p)
	}
	return out
}

var carrierPermissions = []string{
	PermDeliveryRead,
	PermDeliveryPrepare,
	PermDeliveryLoad,
	PermDeliveryDeliver,
	PermRouteCreate,
	PermMediaList,
	PermMediaRead,
}

var operatorPermissions = []string{
	PermVehicleCreate, PermVehicleRead, PermVehicleList, PermVehicleEdit,
	PermVehicleDelete, PermVehicleMap,
	PermCustomerCreate, PermCustomerRead, PermCustomerList, PermCustomerEdit,
	PermCustomerDelete,
	PermZoneCreate, PermZoneRead, PermZoneList, PermZoneEdit, PermZoneDelete,
	PermDeliveryCreate, PermDeliveryRead, PermDeliveryList, PermDeliveryEdit,
	PermDeliveryDelete, PermDeliveryPrepare, PermDeliveryLoad,
	PermDeliveryDeliver, PermDeliveryAdvancedView,
	PermMediaCreate, PermMediaRead, PermMediaList, PermMediaEdit,
	PermMediaDelete,
}

// RolePermissions returns the permission set owned by a role. Unknown roles
// yield an empty set, not an error.
func RolePermissions(role string) []string {
	switch role {
	case "administrator":
		return AdministratorPermissions(administratorExclusions)
	case "carrier":
		out := make([]string, len(carrierPermissions))
		copy(out, carrierPermissions)
		return out
	case "operator":
		out := make([]string, len(operatorPermissions))
		copy(out, operatorPermissions)
		return out
	default:
		return nil
	}
}

// Allowed reports whether any of the given roles grants the permission.
// Evaluation is fail-closed: no roles, an unknown role or an unknown
// permission all answer false. It never panics.
func Allowed(roles []string, permission string) bool {
	if permission == "" || len(roles) == 0 {
		return false
	}
	for _, role := range roles {
		for _, granted := range RolePermissions(role) {
			if granted == permission {
				return true
			}
		}
	}
	return false
}
