// file: internals/features/calendar/dto/calendar_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"hango_backend/internals/features/calendar/model"
)

/* =========================
   Requests
   ========================= */

type CreateClosureRequest struct {
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Label        string `json:"label" validate:"required,max=120"`
	AnnualRepeat bool   `json:"annual_repeat"`
}

type UpdateCutoffRequest struct {
	// "HH:MM" 24h
	Time string `json:"time" validate:"required,len=5"`
}

/* =========================
   Responses
   ========================= */

type ClosureResponse struct {
	ClosureID    uuid.UUID `json:"closure_id"`
	Date         string    `json:"date"`
	Label        string    `json:"label"`
	AnnualRepeat bool      `json:"annual_repeat"`
	CreatedAt    time.Time `json:"created_at"`
}

func FromClosureModel(m *model.ClosureModel) ClosureResponse {
	return ClosureResponse{
		ClosureID:    m.ClosureID,
		Date:         m.ClosureDate.Format("2006-01-02"),
		Label:        m.ClosureLabel,
		AnnualRepeat: m.ClosureAnnualRepeat,
		CreatedAt:    m.ClosureCreatedAt,
	}
}

type CutoffResponse struct {
	Time      string    `json:"time"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}
