package roles

// Role is the user type carried in the access token.
type Role string

const (
	Volunteer          Role = "Volunteer"
	Staff              Role = "Staff"
	Nurse              Role = "Nurse"
	Doctor             Role = "Doctor"
	DistrictReadOnly   Role = "DistrictReadOnlyAdmin"
	DistrictAdmin      Role = "DistrictAdmin"
	StateReadOnlyAdmin Role = "StateReadOnlyAdmin"
	StateAdmin         Role = "StateAdmin"
)

// HierarchyLevel orders roles by reach.
type HierarchyLevel int

const (
	UnknownLevel  HierarchyLevel = 0
	FacilityLevel HierarchyLevel = 1
	DistrictLevel HierarchyLevel = 2
	StateLevel    HierarchyLevel = 3
)

// ImportExport is the set of roles allowed to bulk export the catalog.
var ImportExport = []Role{DistrictAdmin, StateAdmin}

func (r Role) GetHierarchyLevel() HierarchyLevel {
	switch r {
	case Volunteer, Staff, Nurse, Doctor:
		return FacilityLevel
	case DistrictReadOnly, DistrictAdmin:
		return DistrictLevel
	case StateReadOnlyAdmin, StateAdmin:
		return StateLevel
	default:
		return UnknownLevel
	}
}

func (r Role) IsValid() bool {
	return r.GetHierarchyLevel() != UnknownLevel
}

// IsReadOnly reports whether the role may only browse.
func (r Role) IsReadOnly() bool {
	return r == DistrictReadOnly || r == StateReadOnlyAdmin
}

func (r Role) String() string {
	return string(r)
}

// IsAuthorized reports whether role is one of allowed.
func IsAuthorized(role Role, allowed []Role) bool {
	for _, candidate := range allowed {
		if candidate == role {
			return true
		}
	}
	return false
}

// Parse converts configured role names, skipping unknown ones.
func Parse(names []string) []Role {
	parsed := make([]Role, 0, len(names))
	for _, name := range names {
		role := Role(name)
		if role.IsValid() {
			parsed = append(parsed, role)
		}
	}
	return parsed
}
