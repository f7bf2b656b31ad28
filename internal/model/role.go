package model

// ProfileRole — уровень доступа в интерфейсе. Сравнивается как строка.
type ProfileRole string

const (
	ProfileRoleManagement ProfileRole = "management"
	ProfileRoleLogistics  ProfileRole = "logistics"
	ProfileRoleTechnician ProfileRole = "technician"
)

func (r ProfileRole) Valid() bool {
	switch r {
	case ProfileRoleManagement, ProfileRoleLogistics, ProfileRoleTechnician:
		return true
	default:
		return false
	}
}
