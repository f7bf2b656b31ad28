package calendar

import (
	"strings"

	"github.com/Leganyst/crew-platform/internal/model"
)

// Фиксированные словари ролей по цехам.
var roleVocabulary = map[model.Department][]string{
	model.DepartmentSound: {
		"Responsable de Sonido",
		"Tecnico Especialista",
		"Tecnico de Sonido",
		"Auxiliar de Sonido",
	},
	model.DepartmentLights: {
		"Responsable de Iluminacion",
		"Tecnico Especialista",
		"Tecnico de Iluminacion",
		"Auxiliar de Iluminacion",
	},
	model.DepartmentVideo: {
		"Responsable de Video",
		"Tecnico Especialista",
		"Tecnico de Video",
		"Auxiliar de Video",
	},
}

// RolesFor возвращает копию словаря ролей цеха.
func RolesFor(d model.Department) []string {
	roles := roleVocabulary[d]
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}

// DepartmentRole — роль в пределах конкретного цеха.
// Каждому цеху соответствует своя колонка в job_assignments.
type DepartmentRole struct {
	dept model.Department
	role string
}

func Sound(role string) DepartmentRole  { return DepartmentRole{dept: model.DepartmentSound, role: role} }
func Lights(role string) DepartmentRole { return DepartmentRole{dept: model.DepartmentLights, role: role} }
func Video(role string) DepartmentRole  { return DepartmentRole{dept: model.DepartmentVideo, role: role} }

// NewDepartmentRole собирает роль и проверяет её по словарю цеха.
func NewDepartmentRole(dept model.Department, role string) (DepartmentRole, error) {
	if !dept.Valid() {
		return DepartmentRole{}, ErrInvalidDepartment
	}
	r := DepartmentRole{dept: dept, role: strings.TrimSpace(role)}
	if err := r.Validate(); err != nil {
		return DepartmentRole{}, err
	}
	return r, nil
}

func (r DepartmentRole) Department() model.Department { return r.dept }
func (r DepartmentRole) Role() string                 { return r.role }

func (r DepartmentRole) Validate() error {
	for _, known := range roleVocabulary[r.dept] {
		if known == r.role {
			return nil
		}
	}
	return ErrInvalidRole
}

// Column — имя колонки, в которую пишется роль.
func (r DepartmentRole) Column() string {
	switch r.dept {
	case model.DepartmentSound:
		return "sound_role"
	case model.DepartmentLights:
		return "lights_role"
	case model.DepartmentVideo:
		return "video_role"
	default:
		return ""
	}
}

// Apply заполняет колонку своего цеха и обнуляет остальные.
func (r DepartmentRole) Apply(a *model.Assignment) {
	a.SoundRole, a.LightsRole, a.VideoRole = nil, nil, nil
	role := r.role
	switch r.dept {
	case model.DepartmentSound:
		a.SoundRole = &role
	case model.DepartmentLights:
		a.LightsRole = &role
	case model.DepartmentVideo:
		a.VideoRole = &role
	}
}

// RoleOf восстанавливает роль по заполненной колонке.
// ok=false, если заполнено не ровно одно поле.
func RoleOf(a *model.Assignment) (DepartmentRole, bool) {
	var (
		found DepartmentRole
		n     int
	)
	if a.SoundRole != nil {
		found, n = Sound(*a.SoundRole), n+1
	}
	if a.LightsRole != nil {
		found, n = Lights(*a.LightsRole), n+1
	}
	if a.VideoRole != nil {
		found, n = Video(*a.VideoRole), n+1
	}
	if n != 1 {
		return DepartmentRole{}, false
	}
	return found, true
}
