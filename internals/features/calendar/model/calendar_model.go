// file: internals/features/calendar/model/calendar_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ClosureModel: "dia sem atendimento" — data sem serviço de almoço.
type ClosureModel struct {
	ClosureID    uuid.UUID `gorm:"column:closure_id;type:uuid;default:gen_random_uuid();primaryKey" json:"closure_id"`
	ClosureDate  time.Time `gorm:"column:closure_date;type:date;not null;uniqueIndex" json:"closure_date"`
	ClosureLabel string    `gorm:"column:closure_label;type:varchar(120);not null" json:"closure_label"`

	// Repete anualmente (ex.: 25/12 todo ano)
	ClosureAnnualRepeat bool `gorm:"column:closure_annual_repeat;not null;default:false" json:"closure_annual_repeat"`

	ClosureCreatedAt time.Time `gorm:"column:closure_created_at;type:timestamptz;not null;autoCreateTime" json:"closure_created_at"`
}

func (ClosureModel) TableName() string { return "closures" }

// CutoffSettingModel: configuração singleton do horário limite diário.
// Antes do horário: pedido para amanhã; depois: empurra um dia (+2).
type CutoffSettingModel struct {
	CutoffSettingID   uuid.UUID `gorm:"column:cutoff_setting_id;type:uuid;default:gen_random_uuid();primaryKey" json:"cutoff_setting_id"`
	CutoffSettingTime string    `gorm:"column:cutoff_setting_time;type:varchar(5);not null;default:'15:00'" json:"cutoff_setting_time"` // "HH:MM"

	CutoffSettingUpdatedAt time.Time `gorm:"column:cutoff_setting_updated_at;type:timestamptz;not null;autoUpdateTime" json:"cutoff_setting_updated_at"`
}

func (CutoffSettingModel) TableName() string { return "cutoff_settings" }
