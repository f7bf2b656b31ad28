package model

// Department — цех (звук, свет, видео).
type Department string

const (
	DepartmentSound  Department = "sound"
	DepartmentLights Department = "lights"
	DepartmentVideo  Department = "video"
)

// Departments перечисляет все цеха в порядке отображения.
var Departments = []Department{DepartmentSound, DepartmentLights, DepartmentVideo}

func (d Department) Valid() bool {
	switch d {
	case DepartmentSound, DepartmentLights, DepartmentVideo:
		return true
	default:
		return false
	}
}
