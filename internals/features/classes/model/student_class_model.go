// file: internals/features/classes/model/student_class_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	accountsModel "hango_backend/internals/features/accounts/model"
	"hango_backend/internals/helpers/weekday"
)

type StudentClassModel struct {
	StudentClassID uuid.UUID `gorm:"column:student_class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_class_id"`

	StudentClassName string `gorm:"column:student_class_name;type:varchar(120);not null;uniqueIndex" json:"student_class_name"`
	StudentClassYear *int   `gorm:"column:student_class_year;index" json:"student_class_year,omitempty"`

	// Dias da semana em que a turma recebe almoço (Seg–Dom, bitmask).
	// Aplicado a todos os alunos sem sobrescrita individual.
	StudentClassDaysMask int `gorm:"column:student_class_days_mask;not null;default:31" json:"student_class_days_mask"`

	// elo 1:1 com a turma do próximo ano (sem ciclos; preenchido pelo spawn-successor)
	StudentClassNextYearID *uuid.UUID `gorm:"column:student_class_next_year_id;type:uuid;uniqueIndex" json:"student_class_next_year_id,omitempty"`

	StudentClassIsActive bool `gorm:"column:student_class_is_active;not null;default:true;index" json:"student_class_is_active"`

	Members []accountsModel.UserModel `gorm:"many2many:student_class_members;foreignKey:StudentClassID;joinForeignKey:student_class_id;References:UserID;joinReferences:user_id" json:"-"`

	StudentClassCreatedAt time.Time      `gorm:"column:student_class_created_at;type:timestamptz;not null;autoCreateTime" json:"student_class_created_at"`
	StudentClassUpdatedAt time.Time      `gorm:"column:student_class_updated_at;type:timestamptz;not null;autoUpdateTime" json:"student_class_updated_at"`
	StudentClassDeletedAt gorm.DeletedAt `gorm:"column:student_class_deleted_at;index" json:"student_class_deleted_at,omitempty"`
}

func (StudentClassModel) TableName() string { return "student_classes" }

// HumanDays: ex. 31 → "Seg, Ter, Qua, Qui, Sex".
func (sc *StudentClassModel) HumanDays() string {
	return weekday.Humanize(sc.StudentClassDaysMask)
}
