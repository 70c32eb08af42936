package auth

import (
	"fmt"
	"strings"
)

// Resource names a protected domain object class.
type Resource uint8

const (
	// ResourceUsers covers user accounts.
	ResourceUsers Resource = iota + 1
	// ResourceContracts covers contracts.
	ResourceContracts
	// ResourceDocuments covers contract documents.
	ResourceDocuments
	// ResourceAnalysisData covers analysis data sheets.
	ResourceAnalysisData
)

var resourceNames = map[Resource]string{
	ResourceUsers:        "users",
	ResourceContracts:    "contracts",
	ResourceDocuments:    "documents",
	ResourceAnalysisData: "analysisData",
}

// Resources returns every resource in declaration order.
func Resources() []Resource {
	return []Resource{ResourceUsers, ResourceContracts, ResourceDocuments, ResourceAnalysisData}
}

// ParseResource maps a resource name to a Resource.
func ParseResource(s string) (Resource, bool) {
	for res, name := range resourceNames {
		if name == s {
			return res, true
		}
	}

	return 0, false
}

// MustParseResource is ParseResource for compile-time constants. It panics on unknown names.
func MustParseResource(s string) Resource {
	res, ok := ParseResource(s)
	if !ok {
		panic(fmt.Sprintf("auth: unknown resource %q", s))
	}

	return res
}

// String implements fmt.Stringer.
func (r Resource) String() string {
	if name, ok := resourceNames[r]; ok {
		return name
	}

	return fmt.Sprintf("Resource(%d)", uint8(r))
}

// Action is one of the CRUD verbs.
type Action uint8

const (
	// ActionCreate creates a record.
	ActionCreate Action = iota + 1
	// ActionRead lists or views records.
	ActionRead
	// ActionUpdate edits a record.
	ActionUpdate
	// ActionDelete removes a record.
	ActionDelete
)

var actionNames = map[Action]string{
	ActionCreate: "create",
	ActionRead:   "read",
	ActionUpdate: "update",
	ActionDelete: "delete",
}

// Actions returns every action in declaration order.
func Actions() []Action {
	return []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete}
}

// ParseAction maps an action name to an Action.
func ParseAction(s string) (Action, bool) {
	for act, name := range actionNames {
		if name == s {
			return act, true
		}
	}

	return 0, false
}

// String implements fmt.Stringer.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}

	return fmt.Sprintf("Action(%d)", uint8(a))
}

// Permission is a (resource, action) pair. Its text form is "resource.action",
// e.g. "documents.delete".
type Permission struct {
	Resource Resource
	Action   Action
}

// String implements fmt.Stringer.
func (p Permission) String() string {
	return p.Resource.String() + "." + p.Action.String()
}

// ParsePermission parses the "resource.action" text form.
func ParsePermission(s string) (Permission, error) {
	resName, actName, found := strings.Cut(s, ".")
	if !found {
		return Permission{}, fmt.Errorf("%w: %q", ErrMalformedPermission, s)
	}

	res, ok := ParseResource(resName)
	if !ok {
		return Permission{}, fmt.Errorf("%w: %q", ErrUnknownResource, resName)
	}

	act, ok := ParseAction(actName)
	if !ok {
		return Permission{}, fmt.Errorf("%w: %q", ErrUnknownAction, actName)
	}

	return Permission{Resource: res, Action: act}, nil
}

// actionSet is a bit set of actions.
type actionSet uint8

func grant(actions ...Action) actionSet {
	var s actionSet
	for _, a := range actions {
		s |= 1 << a
	}

	return s
}

func (s actionSet) has(a Action) bool {
	if _, ok := actionNames[a]; !ok {
		return false
	}

	return s&(1<<a) != 0
}

// PermissionTable maps a role to the actions it holds per resource.
// Combinations missing from the table are denied.
type PermissionTable map[Role]map[Resource]actionSet

var crud = grant(ActionCreate, ActionRead, ActionUpdate, ActionDelete)

// policy is the compiled-in permission table. It is never mutated.
var policy = PermissionTable{ //nolint:gochecknoglobals
	RoleAdmin: {
		ResourceUsers:        crud,
		ResourceContracts:    crud,
		ResourceDocuments:    crud,
		ResourceAnalysisData: crud,
	},
	RoleStaff: {
		ResourceUsers:        grant(ActionCreate, ActionRead, ActionUpdate),
		ResourceContracts:    grant(ActionCreate, ActionRead),
		ResourceDocuments:    crud,
		ResourceAnalysisData: grant(ActionCreate, ActionRead, ActionUpdate),
	},
	RoleContractor: {
		ResourceUsers:        grant(ActionCreate),
		ResourceDocuments:    grant(ActionCreate, ActionRead, ActionUpdate),
		ResourceAnalysisData: grant(ActionCreate),
	},
}

// Can reports whether role may perform action on resource.
// Absent or unknown roles, resources and actions are denied.
func Can(role Role, resource Resource, action Action) bool {
	return policy[role][resource].has(action)
}

// Allowed is Can for a Permission.
func Allowed(role Role, perm Permission) bool {
	return Can(role, perm.Resource, perm.Action)
}

// Permissions is the bulk view of what a role may do, for conditional rendering.
type Permissions map[Resource]map[Action]bool

// PermissionsFor returns every resource/action answer for role, derived from Can.
func PermissionsFor(role Role) Permissions {
	out := make(Permissions, len(resourceNames))

	for _, res := range Resources() {
		row := make(map[Action]bool, len(actionNames))
		for _, act := range Actions() {
			row[act] = Can(role, res, act)
		}

		out[res] = row
	}

	return out
}

// Allows looks a permission up by names. Templates call it as
// {{ if .Permissions.Allows "documents" "delete" }}.
func (p Permissions) Allows(resource, action string) bool {
	res, ok := ParseResource(resource)
	if !ok {
		return false
	}

	act, ok := ParseAction(action)
	if !ok {
		return false
	}

	return p[res][act]
}

// Any reports whether at least one action is allowed on resource.
func (p Permissions) Any(resource Resource) bool {
	for _, allowed := range p[resource] {
		if allowed {
			return true
		}
	}

	return false
}

// RolesPermitted returns the roles for which Can(role, resource, action) holds.
// Pages use it as their allowed-roles set so no view compares roles by hand.
func RolesPermitted(resource Resource, action Action) RoleSet {
	set := make(RoleSet)

	for _, r := range Roles() {
		if Can(r, resource, action) {
			set[r] = struct{}{}
		}
	}

	return set
}

// MatrixRow is one line of the permission matrix.
type MatrixRow struct {
	Permission string          `json:"permission" yaml:"permission"`
	Roles      map[string]bool `json:"roles"      yaml:"roles"`
}

// Matrix returns the full permission table in resource/action order.
func Matrix() []MatrixRow {
	rows := make([]MatrixRow, 0, len(resourceNames)*len(actionNames))

	for _, res := range Resources() {
		for _, act := range Actions() {
			row := MatrixRow{
				Permission: Permission{Resource: res, Action: act}.String(),
				Roles:      make(map[string]bool, len(roleNames)-1),
			}

			for _, r := range Roles() {
				row.Roles[r.String()] = Can(r, res, act)
			}

			rows = append(rows, row)
		}
	}

	return rows
}
