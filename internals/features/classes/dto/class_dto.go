// file: internals/features/classes/dto/class_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"hango_backend/internals/features/classes/model"
)

/* =========================
   Requests
   ========================= */

type CreateClassRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	Year     *int   `json:"year" validate:"omitempty,min=2000,max=2100"`
	DaysMask *int   `json:"days_mask" validate:"omitempty,min=0,max=127"`
}

func (r *CreateClassRequest) ToModel(defaultMask int) model.StudentClassModel {
	mask := defaultMask
	if r.DaysMask != nil {
		mask = *r.DaysMask
	}
	return model.StudentClassModel{
		StudentClassName:     r.Name,
		StudentClassYear:     r.Year,
		StudentClassDaysMask: mask,
		StudentClassIsActive: true,
	}
}

// UpdateClassRequest: PATCH parcial, tudo pointer-based.
type UpdateClassRequest struct {
	Name     *string `json:"name" validate:"omitempty,max=120"`
	Year     *int    `json:"year" validate:"omitempty,min=2000,max=2100"`
	DaysMask *int    `json:"days_mask" validate:"omitempty,min=0,max=127"`
	IsActive *bool   `json:"is_active"`
}

func (r *UpdateClassRequest) Apply(m *model.StudentClassModel) {
	if r.Name != nil {
		m.StudentClassName = *r.Name
	}
	if r.Year != nil {
		m.StudentClassYear = r.Year
	}
	if r.DaysMask != nil {
		m.StudentClassDaysMask = *r.DaysMask
	}
	if r.IsActive != nil {
		m.StudentClassIsActive = *r.IsActive
	}
}

type MembersRequest struct {
	StudentIDs []uuid.UUID `json:"student_ids" validate:"required,min=1"`
}

type ExtraLunchDayRequest struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Label string `json:"label" validate:"max=120"`
}

type SpawnSuccessorRequest struct {
	Name         string `json:"name" validate:"omitempty,max=120"`
	Year         *int   `json:"year" validate:"omitempty,min=2000,max=2100"`
	CarryMembers bool   `json:"carry_members"`
}

/* =========================
   Responses
   ========================= */

type ClassResponse struct {
	StudentClassID uuid.UUID  `json:"student_class_id"`
	Name           string     `json:"name"`
	Year           *int       `json:"year,omitempty"`
	DaysMask       int        `json:"days_mask"`
	HumanDays      string     `json:"human_days"`
	NextYearID     *uuid.UUID `json:"next_year_id,omitempty"`
	IsActive       bool       `json:"is_active"`
	CreatedAt      time.Time  `json:"created_at"`
}

func FromClassModel(m *model.StudentClassModel) ClassResponse {
	return ClassResponse{
		StudentClassID: m.StudentClassID,
		Name:           m.StudentClassName,
		Year:           m.StudentClassYear,
		DaysMask:       m.StudentClassDaysMask,
		HumanDays:      m.HumanDays(),
		NextYearID:     m.StudentClassNextYearID,
		IsActive:       m.StudentClassIsActive,
		CreatedAt:      m.StudentClassCreatedAt,
	}
}

type ExtraLunchDayResponse struct {
	ExtraLunchDayID uuid.UUID `json:"extra_lunch_day_id"`
	ClassID         uuid.UUID `json:"class_id"`
	Date            string    `json:"date"`
	Label           string    `json:"label"`
}

func FromExtraLunchDayModel(m *model.ExtraLunchDayModel) ExtraLunchDayResponse {
	return ExtraLunchDayResponse{
		ExtraLunchDayID: m.ExtraLunchDayID,
		ClassID:         m.ExtraLunchDayClassID,
		Date:            m.ExtraLunchDayDate.Format("2006-01-02"),
		Label:           m.ExtraLunchDayLabel,
	}
}
