// file: internals/features/accounts/model/user_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hango_backend/internals/constants"
)

// BlockSource indica a origem do bloqueio.
type BlockSource string

const (
	BlockSourceManual BlockSource = "manual"
	BlockSourceAuto   BlockSource = "auto"
)

type UserModel struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;default:gen_random_uuid();primaryKey" json:"user_id"`

	// CPF é o identificador de login (somente dígitos, 11 chars)
	UserCPF       string `gorm:"column:user_cpf;type:varchar(11);not null;uniqueIndex" json:"user_cpf"`
	UserFirstName string `gorm:"column:user_first_name;type:varchar(150)" json:"user_first_name"`
	UserLastName  string `gorm:"column:user_last_name;type:varchar(150)" json:"user_last_name"`
	UserEmail     string `gorm:"column:user_email;type:varchar(255)" json:"user_email,omitempty"`
	UserPassword  string `gorm:"column:user_password;type:varchar(100);not null" json:"-"`

	UserRole     string `gorm:"column:user_role;type:varchar(10);not null;default:'student';index" json:"user_role"`
	UserIsActive bool   `gorm:"column:user_is_active;not null;default:true" json:"user_is_active"`

	// sobrescrita individual de dias de almoço (vale só com o flag ligado)
	UserLunchDaysOverrideEnabled bool `gorm:"column:user_lunch_days_override_enabled;not null;default:false" json:"user_lunch_days_override_enabled"`
	UserLunchDaysOverrideMask    int  `gorm:"column:user_lunch_days_override_mask;not null;default:0" json:"user_lunch_days_override_mask"`

	// bloqueio + faltas
	UserIsBlocked     bool         `gorm:"column:user_is_blocked;not null;default:false;index" json:"user_is_blocked"`
	UserBlockSource   *BlockSource `gorm:"column:user_block_source;type:varchar(10)" json:"user_block_source,omitempty"`
	UserBlockedReason *string      `gorm:"column:user_blocked_reason;type:varchar(255)" json:"user_blocked_reason,omitempty"`
	UserBlockedAt     *time.Time   `gorm:"column:user_blocked_at;type:timestamptz" json:"user_blocked_at,omitempty"`
	UserBlockedByID   *uuid.UUID   `gorm:"column:user_blocked_by_id;type:uuid" json:"user_blocked_by_id,omitempty"`

	UserNoShowStreak int        `gorm:"column:user_no_show_streak;not null;default:0" json:"user_no_show_streak"`
	UserLastNoShowAt *time.Time `gorm:"column:user_last_no_show_at;type:date" json:"user_last_no_show_at,omitempty"`
	UserLastPickupAt *time.Time `gorm:"column:user_last_pickup_at;type:date" json:"user_last_pickup_at,omitempty"`

	UserCreatedAt time.Time      `gorm:"column:user_created_at;type:timestamptz;not null;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt time.Time      `gorm:"column:user_updated_at;type:timestamptz;not null;autoUpdateTime" json:"user_updated_at"`
	UserDeletedAt gorm.DeletedAt `gorm:"column:user_deleted_at;index" json:"user_deleted_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// IsStaffRole: equipe ou admin (operadores não fazem pedido).
func (u *UserModel) IsStaffRole() bool {
	return u.UserRole == constants.RoleStaff || u.UserRole == constants.RoleAdmin
}

func (u *UserModel) FullName() string {
	name := u.UserFirstName
	if u.UserLastName != "" {
		if name != "" {
			name += " "
		}
		name += u.UserLastName
	}
	if name == "" {
		return u.UserCPF
	}
	return name
}
