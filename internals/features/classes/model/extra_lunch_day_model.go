// file: internals/features/classes/model/extra_lunch_day_model.go
package model

import (
	"time"

	"github.com/google/uuid"
)

// ExtraLunchDayModel: data extra de atendimento concedida a uma turma fora da
// máscara normal (evento especial, reposição). Vale acima da máscara.
type ExtraLunchDayModel struct {
	ExtraLunchDayID      uuid.UUID `gorm:"column:extra_lunch_day_id;type:uuid;default:gen_random_uuid();primaryKey" json:"extra_lunch_day_id"`
	ExtraLunchDayClassID uuid.UUID `gorm:"column:extra_lunch_day_class_id;type:uuid;not null;index;uniqueIndex:uq_extra_lunch_day_class_date" json:"extra_lunch_day_class_id"`
	ExtraLunchDayDate    time.Time `gorm:"column:extra_lunch_day_date;type:date;not null;uniqueIndex:uq_extra_lunch_day_class_date" json:"extra_lunch_day_date"`
	ExtraLunchDayLabel   string    `gorm:"column:extra_lunch_day_label;type:varchar(120)" json:"extra_lunch_day_label"`

	ExtraLunchDayCreatedAt time.Time `gorm:"column:extra_lunch_day_created_at;type:timestamptz;not null;autoCreateTime" json:"extra_lunch_day_created_at"`
}

func (ExtraLunchDayModel) TableName() string { return "extra_lunch_days" }
