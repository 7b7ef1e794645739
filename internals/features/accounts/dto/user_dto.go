// file: internals/features/accounts/dto/user_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"hango_backend/internals/features/accounts/model"
	"hango_backend/internals/helpers/weekday"
)

/* =========================
   Requests
   ========================= */

type LoginRequest struct {
	CPF      string `json:"cpf" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type BlockRequest struct {
	Reason string `json:"reason" validate:"required,max=255"`
}

type UnblockRequest struct {
	Reason string `json:"reason" validate:"max=255"`
}

type LunchOverrideRequest struct {
	Enabled bool `json:"enabled"`
	Mask    int  `json:"mask" validate:"min=0,max=127"`
}

/* =========================
   Responses
   ========================= */

type UserResponse struct {
	UserID        uuid.UUID  `json:"user_id"`
	CPF           string     `json:"cpf"`
	FirstName     string     `json:"first_name"`
	LastName      string     `json:"last_name"`
	Role          string     `json:"role"`
	IsBlocked     bool       `json:"is_blocked"`
	BlockSource   *string    `json:"block_source,omitempty"`
	BlockedReason *string    `json:"blocked_reason,omitempty"`
	BlockedAt     *time.Time `json:"blocked_at,omitempty"`
	NoShowStreak  int        `json:"no_show_streak"`
	LastNoShowAt  *time.Time `json:"last_no_show_at,omitempty"`
	LastPickupAt  *time.Time `json:"last_pickup_at,omitempty"`

	LunchOverrideEnabled bool   `json:"lunch_override_enabled"`
	LunchOverrideMask    int    `json:"lunch_override_mask"`
	LunchOverrideDays    string `json:"lunch_override_days"`
}

func FromUserModel(u *model.UserModel) UserResponse {
	var src *string
	if u.UserBlockSource != nil {
		s := string(*u.UserBlockSource)
		src = &s
	}
	return UserResponse{
		UserID:        u.UserID,
		CPF:           u.UserCPF,
		FirstName:     u.UserFirstName,
		LastName:      u.UserLastName,
		Role:          u.UserRole,
		IsBlocked:     u.UserIsBlocked,
		BlockSource:   src,
		BlockedReason: u.UserBlockedReason,
		BlockedAt:     u.UserBlockedAt,
		NoShowStreak:  u.UserNoShowStreak,
		LastNoShowAt:  u.UserLastNoShowAt,
		LastPickupAt:  u.UserLastPickupAt,

		LunchOverrideEnabled: u.UserLunchDaysOverrideEnabled,
		LunchOverrideMask:    u.UserLunchDaysOverrideMask,
		LunchOverrideDays:    weekday.Humanize(u.UserLunchDaysOverrideMask),
	}
}

type BlockEventResponse struct {
	BlockEventID uuid.UUID  `json:"block_event_id"`
	Action       string     `json:"action"`
	Source       string     `json:"source"`
	ActorID      *uuid.UUID `json:"actor_id,omitempty"`
	Reason       string     `json:"reason"`
	CreatedAt    time.Time  `json:"created_at"`
}

func FromBlockEventModel(e *model.BlockEventModel) BlockEventResponse {
	return BlockEventResponse{
		BlockEventID: e.BlockEventID,
		Action:       e.BlockEventAction,
		Source:       string(e.BlockEventSource),
		ActorID:      e.BlockEventActorID,
		Reason:       e.BlockEventReason,
		CreatedAt:    e.BlockEventCreatedAt,
	}
}
