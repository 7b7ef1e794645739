package constants

import "fmt"

// Papéis do sistema (mapeiam o seletor de papel do admin original).
const (
	RoleStudent = "student" // Aluno
	RoleStaff   = "staff"   // Equipe (operador de cozinha/balcão)
	RoleAdmin   = "admin"   // Administrador
)

// Template de mensagens de erro por papel
const (
	ErrOnlyStaffCanAccess  = "❌ Apenas equipe ou admin podem acessar %s."
	ErrOnlyAdminsCanAccess = "❌ Apenas admin pode acessar %s."
)

func RoleErrorStaff(feature string) string {
	return fmt.Sprintf(ErrOnlyStaffCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AllRoles = []string{
		RoleStudent,
		RoleStaff,
		RoleAdmin,
	}

	StaffAndAbove = []string{
		RoleStaff,
		RoleAdmin,
	}

	AdminOnly = []string{
		RoleAdmin,
	}
)
